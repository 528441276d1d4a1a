package store

import (
	"context"
	"errors"

	"github.com/cortexhq/cortex/internal/cortex/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
//
// No operation in this API spans multiple mutations that must be atomic, so
// the interface deliberately carries no transaction surface. Concurrent
// writes to the same record are last-write-wins; that is a documented
// property, not an oversight.
type Store interface {
	Users() Users
	Contents() Contents
	Events() Events
	Terms() Terms

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// UserFilter narrows ListUsers. Zero value lists everything.
type UserFilter struct {
	// Roles matches users holding at least one of the given roles.
	Roles []string

	// Query is a case-insensitive substring match against name or email.
	Query string
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during authentication and duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns users matching the filter, newest first.
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser mutates name, email, roles and password_hash in a single
	// write and bumps updated_at. One statement so a user update can never
	// partially apply.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the user and returns the deleted record.
	DeleteUser(ctx context.Context, userID string) (domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

// ContentFilter narrows ListContents. Zero value lists everything.
type ContentFilter struct {
	Type  string
	State string
}

type Contents interface {
	GetContentByID(ctx context.Context, id string) (domain.Content, error)
	ListContents(ctx context.Context, f ContentFilter) ([]domain.Content, error)
	CreateContent(ctx context.Context, c domain.Content) error
	UpdateContent(ctx context.Context, c domain.Content) error
	DeleteContent(ctx context.Context, id string) (domain.Content, error)
}

type Events interface {
	GetEventByID(ctx context.Context, id string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) error
	UpdateEvent(ctx context.Context, e domain.Event) error
	DeleteEvent(ctx context.Context, id string) (domain.Event, error)
}

type Terms interface {
	GetTermByID(ctx context.Context, id string) (domain.Term, error)
	ListTerms(ctx context.Context) ([]domain.Term, error)
	CreateTerm(ctx context.Context, t domain.Term) error
	UpdateTerm(ctx context.Context, t domain.Term) error
	DeleteTerm(ctx context.Context, id string) (domain.Term, error)
}
