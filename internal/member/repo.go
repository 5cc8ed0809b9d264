package member

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// Repository persists members in the document store. Reads degrade to empty
// results; writes surface their errors to the caller.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// List returns members newest first, with legacy photo aliases collapsed.
// A transport failure logs and returns an empty slice.
func (r *Repository) List(ctx context.Context) []Member {
	var raw []memberDoc
	if err := r.docs.FindAll(ctx, store.Members, "createdAt", &raw); err != nil {
		r.log.WithError(err).Error("list members failed")
		return []Member{}
	}
	out := make([]Member, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.normalized())
	}
	return out
}

// GetByID returns a member, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Member {
	var d memberDoc
	if err := r.docs.FindByID(ctx, store.Members, id, &d); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get member failed")
		}
		return nil
	}
	m := d.normalized()
	return &m
}

// Create inserts a new member, defaulting role and timestamps.
func (r *Repository) Create(ctx context.Context, m Member) (string, error) {
	if m.Name == "" {
		return "", errors.New("member name required")
	}
	if m.Role == "" {
		m.Role = "Member"
	}
	now := time.Now().UTC()
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	return r.docs.Insert(ctx, store.Members, m)
}

// Update applies a partial field update.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.docs.Update(ctx, store.Members, id, fields)
}

// Delete removes a member. Past registrations are untouched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Members, id)
}
