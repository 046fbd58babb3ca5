// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"todolist/internal/store"
	"todolist/internal/tasklist"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, missing fields, unknown task).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// FromError classifies an error returned by the controller or a store.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, tasklist.ErrValidation), errors.Is(err, store.ErrNotFound):
		return UserError
	case errors.Is(err, store.ErrAuth):
		return AuthError
	default:
		return BackendError
	}
}
