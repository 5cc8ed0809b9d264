package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection names used across the repositories.
const (
	Members       = "members"
	Events        = "events"
	Projects      = "projects"
	Achievements  = "achievements"
	Registrations = "registrations"
	Transactions  = "transactions"
	Settings      = "settings"
)

// Documents is the generic CRUD + ordered-query surface over named
// collections of the hosted document store. Repositories sit on top of it;
// nothing below this interface is domain-aware.
type Documents interface {
	// Insert stores a new document and returns its id.
	Insert(ctx context.Context, collection string, doc any) (string, error)
	// FindAll decodes every document into out (a pointer to a slice),
	// ordered by the named timestamp field, newest first.
	FindAll(ctx context.Context, collection, orderBy string, out any) error
	// FindByID decodes a single document into out, or returns a not-found Error.
	FindByID(ctx context.Context, collection, id string, out any) error
	// Update applies a partial field update to an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Upsert merges fields into the named document, creating it when absent.
	Upsert(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document.
	Delete(ctx context.Context, collection, id string) error
}

// Error codes surfaced to the admin UI (see handler error mapping).
const (
	CodeNotFound          = "not-found"
	CodePermissionDenied  = "permission-denied"
	CodeResourceExhausted = "resource-exhausted"
	CodeUnavailable       = "unavailable"
	CodeDeadlineExceeded  = "deadline-exceeded"
	CodeInternal          = "internal"
)

// Error wraps a store failure with a stable code.
type Error struct {
	Code string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store: %s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("store: %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotFound reports a missing document.
var ErrNotFound = &Error{Code: CodeNotFound, Op: "find"}

// IsNotFound reports whether err is a not-found store error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// CodeOf extracts the store error code, or "internal" for anything else.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
