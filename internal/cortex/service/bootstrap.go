package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/slogx"
)

var (
	// ErrBootstrapDisabled is returned when no bootstrap token is configured.
	ErrBootstrapDisabled = errors.New("service: bootstrap is disabled")

	// ErrBootstrapToken is returned for a missing or wrong bootstrap token.
	ErrBootstrapToken = errors.New("service: bootstrap token mismatch")

	// ErrAlreadyBootstrapped is returned once any user exists.
	ErrAlreadyBootstrapped = errors.New("service: already bootstrapped")
)

// BootstrapService creates the first administrator account. It only works
// while the user table is empty and a shared bootstrap token is configured,
// after which every further call is refused.
type BootstrapService struct {
	Store store.Store
	Users *UserService
	Token string
}

type BootstrapInput struct {
	Token    string
	Name     string
	Email    string
	Password string
}

func (s *BootstrapService) Bootstrap(ctx context.Context, in BootstrapInput) (domain.User, error) {
	if s.Token == "" {
		return domain.User{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.Token)), []byte(s.Token)) != 1 {
		return domain.User{}, ErrBootstrapToken
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if !empty {
		return domain.User{}, ErrAlreadyBootstrapped
	}

	user, err := s.Users.CreateUser(ctx, CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Roles:    []string{domain.RoleAdmin},
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("bootstrap admin created",
		"user_id", user.ID, "email", user.Email)
	return user, nil
}
