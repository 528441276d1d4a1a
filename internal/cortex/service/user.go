package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/cryptox"
	"github.com/cortexhq/cortex/pkg/idx"
)

// UserService owns account lifecycle: creation with role policy, profile
// updates, password rotation and deletion.
type UserService struct {
	Store store.Store
}

// CreateUserInput carries the fields of an account creation request. Entry
// records which surface submitted the request; app signups are always
// granted the reader role on top of whatever was asked for.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
	Entry    string
}

// UpdateUserInput carries a partial account update. Zero-valued fields are
// left untouched. Changing the password requires the current one.
type UpdateUserInput struct {
	Name            string
	Email           string
	Roles           []string
	NewPassword     string
	CurrentPassword string
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Email == "" || len(in.Roles) == 0 {
		return domain.User{}, validationErrorf(
			"Name, roles, or email fields are missing in post body.")
	}

	roles := normalizeRoles(in.Roles)
	for _, role := range roles {
		if !domain.ValidRole(role) {
			return domain.User{}, validationErrorf("Role %q is not recognised.", role)
		}
	}
	if in.Entry == "app" && !slices.Contains(roles, domain.RoleReader) {
		roles = append(roles, domain.RoleReader)
	}

	needsPassword := slices.Contains(roles, domain.RoleAdmin) ||
		slices.Contains(roles, domain.RoleReader)
	if needsPassword && in.Password == "" {
		return domain.User{}, validationErrorf(
			"Admins and readers require a password to be set.")
	}

	var hash string
	if in.Password != "" {
		var err error
		hash, err = cryptox.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, err
		}
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        roles,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailExists
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, user.ID)
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, filter store.UserFilter) ([]domain.User, error) {
	filter.Roles = normalizeRoles(filter.Roles)
	for _, role := range filter.Roles {
		if !domain.ValidRole(role) {
			return nil, validationErrorf("Role %q is not recognised.", role)
		}
	}
	return s.Store.Users().ListUsers(ctx, filter)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	// Validate the whole request before touching anything; the store write
	// below is the only mutation, so a rejected request changes nothing.
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = email
	}
	if len(in.Roles) > 0 {
		roles := normalizeRoles(in.Roles)
		for _, role := range roles {
			if !domain.ValidRole(role) {
				return domain.User{}, validationErrorf("Role %q is not recognised.", role)
			}
		}
		user.Roles = roles
	}

	if in.NewPassword != "" {
		// Passwordless accounts (editors created without a login) have no
		// current password to check; this is the path that sets their first
		// one.
		if user.PasswordHash != "" {
			if err := cryptox.VerifyPassword(in.CurrentPassword, user.PasswordHash); err != nil {
				if errors.Is(err, cryptox.ErrPasswordMismatch) {
					return domain.User{}, ErrWrongPassword
				}
				return domain.User{}, err
			}
		}
		hash, err := cryptox.HashPassword(in.NewPassword)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailExists
		}
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().DeleteUser(ctx, id)
}

// normalizeRoles trims, lowercases and de-duplicates while keeping the
// caller's ordering.
func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" || slices.Contains(out, role) {
			continue
		}
		out = append(out, role)
	}
	return out
}
