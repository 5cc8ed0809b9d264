package registration

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/member"
	"clubhub/internal/store"
)

// Registration statuses. pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Registration is a membership application document.
type Registration struct {
	ID         string       `bson:"_id,omitempty" json:"id"`
	FullName   string       `bson:"fullName" json:"fullName"`
	StudentID  string       `bson:"studentId" json:"studentId"`
	Email      string       `bson:"email" json:"email"`
	Phone      string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Department string       `bson:"department" json:"department"`
	Year       string       `bson:"year" json:"year"`
	Interests  []string     `bson:"interests,omitempty" json:"interests,omitempty"`
	Experience string       `bson:"experience,omitempty" json:"experience,omitempty"`
	Motivation string       `bson:"motivation,omitempty" json:"motivation,omitempty"`
	Photo      member.Photo `bson:"photo,omitempty" json:"photo"`
	Status     string       `bson:"status" json:"status"`
	CreatedAt  time.Time    `bson:"createdAt" json:"createdAt"`
}

// registrationDoc carries the legacy name alias from older applications.
type registrationDoc struct {
	Registration `bson:",inline"`
	Name         string `bson:"name,omitempty"`
}

func (d registrationDoc) normalized() Registration {
	r := d.Registration
	if r.FullName == "" {
		r.FullName = d.Name
	}
	return r
}

// Repository persists registrations.
type Repository struct {
	docs store.Documents
	log  *logrus.Logger
}

// NewRepository creates a repo.
func NewRepository(docs store.Documents, log *logrus.Logger) *Repository {
	return &Repository{docs: docs, log: log}
}

// List returns registrations newest first. Read failures log and return an
// empty slice.
func (r *Repository) List(ctx context.Context) []Registration {
	var raw []registrationDoc
	if err := r.docs.FindAll(ctx, store.Registrations, "createdAt", &raw); err != nil {
		r.log.WithError(err).Error("list registrations failed")
		return []Registration{}
	}
	out := make([]Registration, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.normalized())
	}
	return out
}

// GetByID returns a registration, or nil when missing or unreachable.
func (r *Repository) GetByID(ctx context.Context, id string) *Registration {
	var d registrationDoc
	if err := r.docs.FindByID(ctx, store.Registrations, id, &d); err != nil {
		if !store.IsNotFound(err) {
			r.log.WithError(err).WithField("id", id).Error("get registration failed")
		}
		return nil
	}
	reg := d.normalized()
	return &reg
}

// Create inserts a new application in pending state.
func (r *Repository) Create(ctx context.Context, reg Registration) (string, error) {
	switch {
	case reg.FullName == "":
		return "", errors.New("full name required")
	case reg.StudentID == "":
		return "", errors.New("student id required")
	case reg.Email == "":
		return "", errors.New("email required")
	case reg.Department == "":
		return "", errors.New("department required")
	}
	reg.Status = StatusPending
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	return r.docs.Insert(ctx, store.Registrations, reg)
}

// UpdateStatus moves a registration to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.docs.Update(ctx, store.Registrations, id, map[string]any{"status": status})
}

// Delete removes a registration.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, store.Registrations, id)
}
