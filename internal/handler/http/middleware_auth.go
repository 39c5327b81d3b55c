package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/utils"
)

// auth is an HTTP middleware that enforces session-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [utils.ValidateAndParseJWTToken], and on success stores
// the space the token is bound to in the request context under
// [utils.SpaceCtxKey] before delegating to the next handler.
//
// Any valid token grants read access to every space; the vault model keeps
// confidentiality on the client side, so a space holds only ciphertext and
// cross-space reads are required for grant redemption. Write handlers
// additionally call [authorizedSpace] to check that the token is bound to
// the space being written.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the header
// is absent, malformed, expired, or fails signature or issuer validation.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.cfg.TokenSignKey, h.cfg.TokenIssuer)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, "token expired", http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		// Store the authenticated space in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.SpaceCtxKey, token.Space)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authorizedSpace reports whether the session in the request context is
// bound to the given space. Used by write handlers; reads are open to any
// authenticated session.
func authorizedSpace(ctx context.Context, space string) bool {
	tokenSpace, ok := utils.GetSpaceFromContext(ctx)
	return ok && tokenSpace == space
}
