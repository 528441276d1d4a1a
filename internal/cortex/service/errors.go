package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Keeping the two cases indistinguishable prevents email enumeration.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrNotAdmin is returned when a non-admin requests dashboard entry.
	ErrNotAdmin = errors.New("not_admin")

	// ErrWrongPassword is returned when a password change supplies an
	// incorrect current password.
	ErrWrongPassword = errors.New("wrong_current_password")

	// ErrEmailExists is returned when a create or update would duplicate
	// another user's email.
	ErrEmailExists = errors.New("email_exists")
)

// ValidationError reports a request that is structurally fine but missing or
// violating required fields. The message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
