package event

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// Event is a club event document. Status is derived at read time, never stored.
type Event struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Organizer   string    `bson:"organizer,omitempty" json:"organizer,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	Status      string    `bson:"-" json:"status"`
}

// Derive fills in upcoming/past relative to now.
func (e *Event) Derive(now time.Time) {
	if e.Date.Before(now) {
		e.Status = "past"
	} else {
		e.Status = "upcoming"
	}
}

// Repository persists events.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
	now  func() time.Time
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log, now: time.Now}
}

// List returns events newest first with derived status. Read failures log
// and return an empty slice.
func (r *Repository) List(ctx context.Context) []Event {
	var out []Event
	if err := r.docs.FindAll(ctx, store.Events, "createdAt", &out); err != nil {
		r.log.WithError(err).Error("list events failed")
		return []Event{}
	}
	now := r.now()
	for i := range out {
		out[i].Derive(now)
	}
	return out
}

// GetByID returns an event, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Event {
	var e Event
	if err := r.docs.FindByID(ctx, store.Events, id, &e); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get event failed")
		}
		return nil
	}
	e.Derive(r.now())
	return &e
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, e Event) (string, error) {
	if e.Title == "" {
		return "", errors.New("event title required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, store.Events, e)
}

// Update applies a partial field update.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.docs.Update(ctx, store.Events, id, fields)
}

// Delete removes an event.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Events, id)
}
