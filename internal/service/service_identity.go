package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// identityService verifies tokens of the external authentication provider
// and maps identities to local users.
type identityService struct {
	// userRepository creates and looks up local user records.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret shared with the provider.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim; empty disables the check.
	tokenIssuer string

	logger *logger.Logger
}

// NewIdentityService constructs an IdentityService with token parameters
// taken from cfg.
func NewIdentityService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) IdentityService {
	return &identityService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		logger:         logger,
	}
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, bad signature, missing
// claims) is normalised to ErrTokenIsExpiredOrInvalid so that callers do not
// need to inspect low-level JWT errors.
func (s *identityService) ParseToken(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	claims, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*identityService.ParseToken").Msg("token rejected")
		return models.Identity{}, ErrTokenIsExpiredOrInvalid
	}

	identity, err := claims.Identity()
	if err != nil {
		log.Debug().Err(err).Str("func", "*identityService.ParseToken").Msg("token carries no identity")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return identity, nil
}

// Resolve implements [IdentityService].
func (s *identityService) Resolve(ctx context.Context, identity models.Identity) (models.User, error) {
	log := logger.FromContext(ctx)

	if identity.ID == "" || identity.CreatedAt.IsZero() {
		return models.User{}, ErrIdentityUnavailable
	}

	user, err := s.userRepository.FindOrCreate(ctx, identity)
	if err != nil {
		log.Err(err).Str("func", "*identityService.Resolve").Msg("failed to resolve user")
		return models.User{}, fmt.Errorf("resolve user: %w", err)
	}

	if !user.IdentityCreatedAt.Equal(models.NewIdentity(identity.ID, identity.CreatedAt).CreatedAt) {
		log.Warn().Str("func", "*identityService.Resolve").Int64("user_id", user.UserID).
			Msg("token identity timestamp differs from the stored one, using stored value")
	}

	return user, nil
}
