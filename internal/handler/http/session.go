package http

import (
	"encoding/json"
	"net/http"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/utils"
	"github.com/dkrylov/go-data-vault/models"
)

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.Space == "" {
		log.Error().Msg("session request without a space name")
		http.Error(w, "space is required", http.StatusBadRequest)
		return
	}

	if !utils.SecretsEqual(req.Secret, h.cfg.BootstrapSecret) {
		log.Error().Str("space", req.Space).Msg("wrong bootstrap secret")
		http.Error(w, "invalid bootstrap secret", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWTToken(h.cfg.TokenIssuer, req.Space, h.cfg.TokenDuration, h.cfg.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("space", req.Space).Msg("session token issued")

	utils.WriteJSON(w, models.SessionResponse{
		Token:     token.SignedString,
		ExpiresIn: int64(h.cfg.TokenDuration.Seconds()),
	}, http.StatusOK)
}
