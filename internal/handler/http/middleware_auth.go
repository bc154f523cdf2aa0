package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// auth enforces bearer authentication against the identity provider tokens.
//
// The token is verified by [service.IdentityService.ParseToken] and its
// identity resolved to a local user, which is stored in the request context
// under [utils.UserCtxKey]. Requests are rejected with 401 when the header is
// missing or malformed, the token is invalid or expired, or the identity is
// unusable. Failures of the user store answer with 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.IdentityService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		user, err := h.services.IdentityService.Resolve(ctx, identity)
		if err != nil {
			if errors.Is(err, service.ErrIdentityUnavailable) {
				log.Err(err).Msg("token carries no usable identity")
			} else {
				log.Err(err).Msg("error resolving user")
			}
			h.writeError(w, err)
			return
		}

		ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
