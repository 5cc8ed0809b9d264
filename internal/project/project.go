package project

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

// Project statuses.
const (
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
	StatusPlanned   = "planned"
)

// Project is a club project document. Status is stored as status but served
// to clients under the legacy JSON name category.
type Project struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty"`
	Technologies []string  `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Status       string    `bson:"status" json:"category"`
	GithubURL    string    `bson:"githubUrl,omitempty" json:"githubUrl,omitempty"`
	DemoURL      string    `bson:"demoUrl,omitempty" json:"demoUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func validStatus(s string) bool {
	return s == StatusCompleted || s == StatusOngoing || s == StatusPlanned
}

// Repository persists projects.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// List returns projects newest first. Read failures log and return an empty slice.
func (r *Repository) List(ctx context.Context) []Project {
	var out []Project
	if err := r.docs.FindAll(ctx, store.Projects, "createdAt", &out); err != nil {
		r.log.WithError(err).Error("list projects failed")
		return []Project{}
	}
	return out
}

// GetByID returns a project, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Project {
	var p Project
	if err := r.docs.FindByID(ctx, store.Projects, id, &p); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get project failed")
		}
		return nil
	}
	return &p
}

// Create inserts a new project, defaulting status to planned.
func (r *Repository) Create(ctx context.Context, p Project) (string, error) {
	if p.Title == "" {
		return "", errors.New("project title required")
	}
	if p.Status == "" {
		p.Status = StatusPlanned
	}
	if !validStatus(p.Status) {
		return "", errors.New("invalid project status")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, store.Projects, p)
}

// Update applies a partial field update, validating a status change.
func (r *Repository) Update(ctx context.Context, id string, fields map[string]any) error {
	if s, ok := fields["status"].(string); ok && !validStatus(s) {
		return errors.New("invalid project status")
	}
	return r.docs.Update(ctx, store.Projects, id, fields)
}

// Delete removes a project.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Projects, id)
}
