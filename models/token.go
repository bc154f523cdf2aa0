package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoCreatedAtClaim is returned when a token lacks the account creation
// timestamp claim.
var ErrNoCreatedAtClaim = errors.New("token has no created_at claim")

// IdentityClaims is the claim set issued by the authentication provider.
//
// The standard "sub" claim carries the user identifier. The custom
// "created_at" claim carries the account creation time as Unix seconds.
type IdentityClaims struct {
	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// CreatedAt is the account creation timestamp in Unix seconds.
	CreatedAt int64 `json:"created_at"`
}

// Identity converts the claims into an [Identity].
//
// Returns an error if the subject or the creation timestamp is missing.
func (c IdentityClaims) Identity() (Identity, error) {
	if c.Subject == "" {
		return Identity{}, jwt.ErrTokenInvalidSubject
	}
	if c.CreatedAt <= 0 {
		return Identity{}, ErrNoCreatedAtClaim
	}

	return NewIdentity(c.Subject, time.Unix(c.CreatedAt, 0)), nil
}
