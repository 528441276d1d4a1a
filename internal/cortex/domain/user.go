package domain

import (
	"slices"
	"time"
)

// Role names form a closed set.
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
	RoleEditor = "editor"
)

// ValidRole reports whether name is part of the closed role set.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleReader, RoleEditor:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // unique across all records
	PasswordHash string    `json:"-"`     // argon2 encoded, never serialized
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// PrimaryRole is the single role embedded in token claims: admin wins if
// present, otherwise the first assigned role.
func (u User) PrimaryRole() string {
	if u.HasRole(RoleAdmin) {
		return RoleAdmin
	}
	if len(u.Roles) > 0 {
		return u.Roles[0]
	}
	return ""
}
