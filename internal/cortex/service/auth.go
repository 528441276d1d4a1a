package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/cryptox"
	"github.com/cortexhq/cortex/pkg/jwtx"
	"github.com/cortexhq/cortex/pkg/slogx"
)

// AuthService validates submitted credentials and issues signed tokens.
// It never mutates the store; authentication is a read plus a signature.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Authenticate checks email and password against the credential store and,
// when entry is "dash", requires the admin role. On success it returns a
// signed token and the claims embedded in it.
//
// Passwords are always compared against the stored Argon2id hash; there is
// deliberately no plaintext comparison path.
func (s *AuthService) Authenticate(
	ctx context.Context,
	email, password, entry string,
) (string, jwtx.Claims, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	entry = strings.TrimSpace(entry)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same failure as a wrong password so callers can't probe
			// which emails exist.
			return "", jwtx.Claims{}, ErrInvalidCredentials
		}
		return "", jwtx.Claims{}, err
	}

	if user.PasswordHash == "" {
		// Passwordless records (e.g. contributors created without a
		// login) can never authenticate.
		return "", jwtx.Claims{}, ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", jwtx.Claims{}, ErrInvalidCredentials
		}
		l.Error("stored password hash is unreadable", "user_id", user.ID, "err", err)
		return "", jwtx.Claims{}, err
	}

	if entry == jwtx.EntryDash && !user.HasRole(domain.RoleAdmin) {
		return "", jwtx.Claims{}, ErrNotAdmin
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		user.ID,
		user.Name,
		user.Email,
		user.PrimaryRole(),
		entry,
		ttl,
		s.Issuer,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", jwtx.Claims{}, err
	}

	return token, claims, nil
}
