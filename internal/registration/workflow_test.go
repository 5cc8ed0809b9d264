package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubhub/internal/member"
)

type fakeRegs struct {
	regs     map[string]*Registration
	statuses []string
	failOn   string
}

func (f *fakeRegs) GetByID(_ context.Context, id string) *Registration {
	return f.regs[id]
}

func (f *fakeRegs) UpdateStatus(_ context.Context, id, status string) error {
	if f.failOn == "status" {
		return errors.New("status write failed")
	}
	f.regs[id].Status = status
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeMembers struct {
	created []member.Member
	fail    bool
}

func (f *fakeMembers) Create(_ context.Context, m member.Member) (string, error) {
	if f.fail {
		return "", errors.New("member write failed")
	}
	f.created = append(f.created, m)
	return "m1", nil
}

func pendingReg() *Registration {
	return &Registration{
		ID:         "r1",
		FullName:   "Alice Rahman",
		StudentID:  "2021-1-60-001",
		Email:      "alice@club.edu",
		Phone:      "01700000000",
		Department: "CSE",
		Year:       "3rd",
		Motivation: "I want to build things.",
		Status:     StatusPending,
	}
}

func TestWorkflow_ApproveCreatesExactlyOneMember(t *testing.T) {
	regs := &fakeRegs{regs: map[string]*Registration{"r1": pendingReg()}}
	members := &fakeMembers{}
	w := NewWorkflow(regs, members)
	w.now = func() time.Time { return time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC) }

	memberID, err := w.Approve(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if memberID != "m1" {
		t.Fatalf("memberID = %q", memberID)
	}
	if len(members.created) != 1 {
		t.Fatalf("created %d members, want exactly 1", len(members.created))
	}
	if regs.regs["r1"].Status != StatusApproved {
		t.Fatalf("status = %q, want approved", regs.regs["r1"].Status)
	}

	m := members.created[0]
	if m.Name != "Alice Rahman" || m.Role != "Member" || m.Department != "CSE" {
		t.Fatalf("member = %+v", m)
	}
	if m.Bio != "I want to build things." {
		t.Fatalf("bio not seeded from motivation: %q", m.Bio)
	}
	if !m.JoinedAt.Equal(w.now()) || !m.CreatedAt.Equal(w.now()) {
		t.Fatal("timestamps must be the approval instant")
	}
}

func TestWorkflow_TerminalStatesAreFinal(t *testing.T) {
	for _, status := range []string{StatusApproved, StatusRejected} {
		t.Run(status, func(t *testing.T) {
			reg := pendingReg()
			reg.Status = status
			regs := &fakeRegs{regs: map[string]*Registration{"r1": reg}}
			members := &fakeMembers{}
			w := NewWorkflow(regs, members)

			if _, err := w.Approve(context.Background(), "r1"); !errors.Is(err, ErrAlreadyDecided) {
				t.Fatalf("Approve on %s = %v, want ErrAlreadyDecided", status, err)
			}
			if err := w.Reject(context.Background(), "r1"); !errors.Is(err, ErrAlreadyDecided) {
				t.Fatalf("Reject on %s = %v, want ErrAlreadyDecided", status, err)
			}
			if len(members.created) != 0 {
				t.Fatal("terminal registration must not create members")
			}
		})
	}
}

func TestWorkflow_MemberFailureLeavesPending(t *testing.T) {
	regs := &fakeRegs{regs: map[string]*Registration{"r1": pendingReg()}}
	w := NewWorkflow(regs, &fakeMembers{fail: true})

	if _, err := w.Approve(context.Background(), "r1"); err == nil {
		t.Fatal("Approve must surface the member write failure")
	}
	if regs.regs["r1"].Status != StatusPending {
		t.Fatalf("status = %q; a failed approval must stay retriable", regs.regs["r1"].Status)
	}
}

func TestWorkflow_StatusFailureReportsCreatedMember(t *testing.T) {
	regs := &fakeRegs{regs: map[string]*Registration{"r1": pendingReg()}, failOn: "status"}
	members := &fakeMembers{}
	w := NewWorkflow(regs, members)

	memberID, err := w.Approve(context.Background(), "r1")
	if err == nil {
		t.Fatal("status write failure must be reported")
	}
	if memberID != "m1" || len(members.created) != 1 {
		t.Fatal("the created member id must still be returned for compensation")
	}
}

func TestWorkflow_Reject(t *testing.T) {
	regs := &fakeRegs{regs: map[string]*Registration{"r1": pendingReg()}}
	w := NewWorkflow(regs, &fakeMembers{})

	if err := w.Reject(context.Background(), "r1"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if regs.regs["r1"].Status != StatusRejected {
		t.Fatalf("status = %q", regs.regs["r1"].Status)
	}
}

func TestWorkflow_MissingRegistration(t *testing.T) {
	w := NewWorkflow(&fakeRegs{regs: map[string]*Registration{}}, &fakeMembers{})
	if _, err := w.Approve(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
