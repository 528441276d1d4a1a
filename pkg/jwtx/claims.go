package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. The
// dashboard and app clients both expect a 24 hour session.
const DefaultAccessTokenTTL = 24 * time.Hour

// Entry channel values a caller may declare when authenticating.
const (
	EntryDash = "dash" // admin console
	EntryApp  = "app"  // end-user client
)

// Claims are the access-token claims used across the service. The subject
// carries the user ID; everything else identifies the caller to handlers
// without another store lookup. Keep changes additive to preserve
// compatibility with outstanding tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the display name for the user.
	Name string `json:"name,omitempty"`

	// Email the user authenticated with.
	Email string `json:"email,omitempty"`

	// Role is the primary role of the user (admin, reader, editor).
	Role string `json:"role,omitempty"`

	// Entry is the caller-declared entry channel ("dash" or "app").
	Entry string `json:"entry,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for a user.
func NewAccessClaims(
	subject, name, email, role, entry string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Name:  name,
		Email: email,
		Role:  role,
		Entry: entry,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
