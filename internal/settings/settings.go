package settings

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// settingsDocID keys the singleton document inside the settings collection.
const settingsDocID = "app"

// Settings is the site-wide singleton. Absence of the document means the
// defaults below.
type Settings struct {
	ApplicationsEnabled bool   `bson:"applicationsEnabled" json:"applicationsEnabled"`
	DisabledMessage     string `bson:"disabledMessage,omitempty" json:"disabledMessage,omitempty"`
}

// Default is what a missing or unreadable settings document means.
func Default() Settings {
	return Settings{ApplicationsEnabled: true}
}

// Repository reads and writes the singleton.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// Get returns the stored settings, or the defaults when the document is
// missing or the store is unreachable.
func (r *Repository) Get(ctx context.Context) Settings {
	var s Settings
	if err := r.docs.FindByID(ctx, store.Settings, settingsDocID, &s); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).Error("get settings failed")
		}
		return Default()
	}
	return s
}

// GetWithin races Get against a deadline and substitutes the defaults on
// expiry. Settings staleness is tolerable; a hung read is not.
func (r *Repository) GetWithin(ctx context.Context, d time.Duration) Settings {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan Settings, 1)
	go func() { done <- r.Get(ctx) }()

	select {
	case s := <-done:
		return s
	case <-ctx.Done():
		r.log.Warn("settings read timed out, serving defaults")
		return Default()
	}
}

// Save merges the settings into the singleton document, creating it on first
// write.
func (r *Repository) Save(ctx context.Context, s Settings) error {
	return r.docs.Upsert(ctx, store.Settings, settingsDocID, map[string]any{
		"applicationsEnabled": s.ApplicationsEnabled,
		"disabledMessage":     s.DisabledMessage,
	})
}
