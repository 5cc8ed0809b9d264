package achievement

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

// failingDocs errors every call; reads must swallow it.
type failingDocs struct{ store.Documents }

func (failingDocs) FindAll(context.Context, string, string, any) error {
	return errors.New("store down")
}

func TestRoundTrip(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"Hackathon Winner", "Best Club Award"} {
		if _, err := repo.Create(ctx, Achievement{Title: title, CreatedAt: base.AddDate(0, 0, i)}); err != nil {
			t.Fatal(err)
		}
	}

	got := repo.List(ctx)
	if len(got) != 2 || got[0].Title != "Best Club Award" {
		t.Fatalf("got %+v", got)
	}
	if found := repo.GetByID(ctx, got[0].ID); found == nil || found.Title != got[0].Title {
		t.Fatalf("found %+v", found)
	}
}

func TestCreate_TitleRequired(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	if _, err := repo.Create(context.Background(), Achievement{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestList_SwallowsReadErrors(t *testing.T) {
	repo := NewRepository(failingDocs{}, quietLogger())
	got := repo.List(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("got %+v, want empty non-nil slice", got)
	}
}

func TestGetByID_MissingIsNil(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	if got := repo.GetByID(context.Background(), "missing"); got != nil {
		t.Fatalf("got %+v", got)
	}
}
