package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clubhub/internal/member"
)

// Workflow errors.
var (
	ErrNotFound       = errors.New("registration not found")
	ErrAlreadyDecided = errors.New("registration already decided")
)

type registrations interface {
	GetByID(ctx context.Context, id string) *Registration
	UpdateStatus(ctx context.Context, id, status string) error
}

type memberCreator interface {
	Create(ctx context.Context, m member.Member) (string, error)
}

// Workflow drives the pending -> approved/rejected transition. Terminal
// states are guarded server-side; the UI hiding the buttons is not enough
// against a double submission.
type Workflow struct {
	regs    registrations
	members memberCreator
	now     func() time.Time
}

// NewWorkflow wires the approval workflow.
func NewWorkflow(regs registrations, members memberCreator) *Workflow {
	return &Workflow{regs: regs, members: members, now: time.Now}
}

// Approve converts a pending registration into a member and marks it
// approved. The store offers no cross-collection transaction, so the member
// is created first: if the status flip then fails the registration stays
// pending and a retry may produce a duplicate member, which the member
// dedup pass collapses. The reverse order would strand an approved
// registration with no member at all.
func (w *Workflow) Approve(ctx context.Context, id string) (string, error) {
	reg := w.regs.GetByID(ctx, id)
	if reg == nil {
		return "", ErrNotFound
	}
	if reg.Status != StatusPending {
		return "", ErrAlreadyDecided
	}

	now := w.now().UTC()
	memberID, err := w.members.Create(ctx, member.Member{
		Name:       reg.FullName,
		Role:       "Member",
		Department: reg.Department,
		Year:       reg.Year,
		Email:      reg.Email,
		Phone:      reg.Phone,
		Photo:      reg.Photo,
		Bio:        reg.Motivation,
		JoinedAt:   now,
		CreatedAt:  now,
	})
	if err != nil {
		return "", fmt.Errorf("create member: %w", err)
	}

	if err := w.regs.UpdateStatus(ctx, id, StatusApproved); err != nil {
		return memberID, fmt.Errorf("member %s created but status update failed: %w", memberID, err)
	}
	return memberID, nil
}

// Reject marks a pending registration rejected.
func (w *Workflow) Reject(ctx context.Context, id string) error {
	reg := w.regs.GetByID(ctx, id)
	if reg == nil {
		return ErrNotFound
	}
	if reg.Status != StatusPending {
		return ErrAlreadyDecided
	}
	return w.regs.UpdateStatus(ctx, id, StatusRejected)
}
