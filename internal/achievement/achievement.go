package achievement

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// Achievement is an award or recognition document.
type Achievement struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	AwardedBy   string    `bson:"awardedBy,omitempty" json:"awardedBy,omitempty"`
	TeamMembers []string  `bson:"teamMembers,omitempty" json:"teamMembers,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Repository persists achievements.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// List returns achievements newest first. Read failures log and return an
// empty slice.
func (r *Repository) List(ctx context.Context) []Achievement {
	var out []Achievement
	if err := r.docs.FindAll(ctx, store.Achievements, "createdAt", &out); err != nil {
		r.log.WithError(err).Error("list achievements failed")
		return []Achievement{}
	}
	return out
}

// GetByID returns an achievement, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Achievement {
	var a Achievement
	if err := r.docs.FindByID(ctx, store.Achievements, id, &a); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get achievement failed")
		}
		return nil
	}
	return &a
}

// Create inserts a new achievement.
func (r *Repository) Create(ctx context.Context, a Achievement) (string, error) {
	if a.Title == "" {
		return "", errors.New("achievement title required")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, store.Achievements, a)
}

// Update applies a partial field update.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.docs.Update(ctx, store.Achievements, id, fields)
}

// Delete removes an achievement.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Achievements, id)
}
