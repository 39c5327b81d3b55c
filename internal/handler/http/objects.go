package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/store"
	"github.com/dkrylov/go-data-vault/internal/utils"
	"github.com/dkrylov/go-data-vault/models"
)

func (h *Handler) saveObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	space, path, ok := objectParams(w, r)
	if !ok {
		return
	}

	if !authorizedSpace(ctx, space) {
		log.Err(ErrSpaceMismatch).Str("space", space).Send()
		http.Error(w, ErrSpaceMismatch.Error(), http.StatusForbidden)
		return
	}

	var obj models.StoredObject
	if err := json.NewDecoder(r.Body).Decode(&obj); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.repo.SaveObject(ctx, space, path, obj); err != nil {
		log.Err(err).Msg("unexpected error occurred during saving object")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	space, path, ok := objectParams(w, r)
	if !ok {
		return
	}

	obj, err := h.repo.GetObject(ctx, space, path)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrObjectNotFound):
			http.Error(w, "object not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during getting object")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, obj, http.StatusOK)
}

func (h *Handler) deleteObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	space, path, ok := objectParams(w, r)
	if !ok {
		return
	}

	if !authorizedSpace(ctx, space) {
		log.Err(ErrSpaceMismatch).Str("space", space).Send()
		http.Error(w, ErrSpaceMismatch.Error(), http.StatusForbidden)
		return
	}

	if err := h.repo.DeleteObject(ctx, space, path); err != nil {
		switch {
		case errors.Is(err, store.ErrObjectNotFound):
			http.Error(w, "object not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during deleting object")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listObjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	space := spaceParam(r)
	if space == "" {
		http.Error(w, "space is required", http.StatusBadRequest)
		return
	}

	prefix := r.URL.Query().Get("prefix")

	paths, err := h.repo.ListObjects(ctx, space, prefix)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during listing objects")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if paths == nil {
		paths = []string{}
	}

	utils.WriteJSON(w, paths, http.StatusOK)
}

// objectParams extracts the space and object path from the request URL,
// writing a 400 response and returning ok=false when either is missing.
func objectParams(w http.ResponseWriter, r *http.Request) (space, path string, ok bool) {
	space = spaceParam(r)
	path = wildcardParam(r)
	if space == "" || path == "" {
		http.Error(w, "space and object path are required", http.StatusBadRequest)
		return "", "", false
	}
	return space, path, true
}

func spaceParam(r *http.Request) string {
	space := chi.URLParam(r, "space")
	if unescaped, err := url.PathUnescape(space); err == nil {
		space = unescaped
	}
	return space
}

// wildcardParam returns the decoded tail of the matched route. Chi hands the
// wildcard back escaped when the request carried an escaped path, so segments
// are unescaped here while "/" separators are preserved.
func wildcardParam(r *http.Request) string {
	path := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return path
}
