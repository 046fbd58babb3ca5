// Package store defines the backend-agnostic interface for the task collection.
package store

import (
	"context"
	"errors"
)

// Errors returned by every Store implementation. Backends wrap provider
// errors so callers can classify them with errors.Is.
var (
	// ErrNotFound indicates the referenced task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAuth indicates missing, expired or rejected credentials.
	ErrAuth = errors.New("not authorized")

	// ErrTimeout indicates a call did not complete within its deadline.
	ErrTimeout = errors.New("request timed out")
)

// Store is the remote collection of task records.
// All hosted-database calls go through this interface.
// The controller and commands never import a provider SDK directly.
type Store interface {
	// List returns every task in the collection, in backend order.
	List(ctx context.Context) ([]Task, error)

	// Create writes a new record and returns the id the backend assigned.
	Create(ctx context.Context, rec Record) (string, error)

	// Update writes the non-nil fields of p to the task with the given id.
	// Returns ErrNotFound if the task does not exist.
	Update(ctx context.Context, id string, p Patch) error

	// Delete removes the task with the given id.
	Delete(ctx context.Context, id string) error
}
