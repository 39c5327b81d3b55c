package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/store"
	"github.com/dkrylov/go-data-vault/models"
)

// publicSpacePrefix namespaces the anyone-can-read area inside the object
// repository. Addresses are base58 and never contain ":", so public spaces
// cannot collide with session-scoped ones.
const publicSpacePrefix = "public:"

func publicSpace(address string) string {
	return publicSpacePrefix + address
}

func (h *Handler) savePublicObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	address, path, ok := publicParams(w, r)
	if !ok {
		return
	}

	// The public area under an address is writable only by the session
	// holding that address's space.
	if !authorizedSpace(ctx, address) {
		log.Err(ErrSpaceMismatch).Str("address", address).Send()
		http.Error(w, ErrSpaceMismatch.Error(), http.StatusForbidden)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Msg("error occurred during reading request body")
		http.Error(w, "error reading request body", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	obj := models.StoredObject{Data: data, ContentType: contentType}
	if err = h.repo.SaveObject(ctx, publicSpace(address), path, obj); err != nil {
		log.Err(err).Msg("unexpected error occurred during saving public object")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getPublicObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	address, path, ok := publicParams(w, r)
	if !ok {
		return
	}

	obj, err := h.repo.GetObject(ctx, publicSpace(address), path)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrObjectNotFound):
			http.Error(w, "object not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during getting public object")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(obj.Data)
}

func publicParams(w http.ResponseWriter, r *http.Request) (address, path string, ok bool) {
	address = chi.URLParam(r, "address")
	if unescaped, err := url.PathUnescape(address); err == nil {
		address = unescaped
	}
	path = wildcardParam(r)
	if address == "" || path == "" {
		http.Error(w, "address and object path are required", http.StatusBadRequest)
		return "", "", false
	}
	return address, path, true
}
