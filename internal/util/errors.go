package util

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrVerseNotFound    = errors.New("bible verse not found")

	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrSectionExists      = errors.New("section with this name already exists")
	ErrVerseExists        = errors.New("bible verse already exists")
	ErrAttemptConflict    = errors.New("attempt number already recorded for this section")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStoreUnavailable   = errors.New("storage temporarily unavailable")
)

// ValidationError rejects a request field. It maps to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsTimeout reports whether err came from an expired storage deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrStoreUnavailable)
}
