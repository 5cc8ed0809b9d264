package event

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"clubhub/internal/store"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type failingDocs struct{}

func (failingDocs) Insert(context.Context, string, any) (string, error) {
	return "", errors.New("boom")
}
func (failingDocs) FindAll(context.Context, string, string, any) error { return errors.New("boom") }
func (failingDocs) FindByID(context.Context, string, string, any) error {
	return errors.New("boom")
}
func (failingDocs) Update(context.Context, string, string, map[string]any) error {
	return errors.New("boom")
}
func (failingDocs) Upsert(context.Context, string, string, map[string]any) error {
	return errors.New("boom")
}
func (failingDocs) Delete(context.Context, string, string) error { return errors.New("boom") }

func TestRepository_ListOrderAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(store.NewMemory(), quietLogger())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	if _, err := repo.Create(ctx, Event{
		Title:     "Orientation",
		Date:      now.Add(-48 * time.Hour),
		CreatedAt: now.Add(-72 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(ctx, Event{
		Title:     "Hackathon",
		Date:      now.Add(72 * time.Hour),
		CreatedAt: now.Add(-24 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}

	got := repo.List(ctx)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// newest createdAt first
	if got[0].Title != "Hackathon" || got[1].Title != "Orientation" {
		t.Fatalf("order = [%s, %s]", got[0].Title, got[1].Title)
	}
	if got[0].Status != "upcoming" {
		t.Fatalf("future event status = %q", got[0].Status)
	}
	if got[1].Status != "past" {
		t.Fatalf("past event status = %q", got[1].Status)
	}
}

func TestRepository_ReadsSwallowErrors(t *testing.T) {
	repo := NewRepository(failingDocs{}, quietLogger())
	ctx := context.Background()

	if got := repo.List(ctx); len(got) != 0 {
		t.Fatalf("List on broken store = %v, want empty", got)
	}
	if got := repo.GetByID(ctx, "abc"); got != nil {
		t.Fatalf("GetByID on broken store = %v, want nil", got)
	}
}

func TestRepository_WritesPropagateErrors(t *testing.T) {
	repo := NewRepository(failingDocs{}, quietLogger())
	ctx := context.Background()

	if _, err := repo.Create(ctx, Event{Title: "x"}); err == nil {
		t.Fatal("Create on broken store must error")
	}
	if err := repo.Update(ctx, "abc", map[string]any{"title": "y"}); err == nil {
		t.Fatal("Update on broken store must error")
	}
	if err := repo.Delete(ctx, "abc"); err == nil {
		t.Fatal("Delete on broken store must error")
	}
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	if got := repo.GetByID(context.Background(), "missing"); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
