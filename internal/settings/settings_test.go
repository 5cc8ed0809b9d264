package settings

import (
	"context"
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

func TestRepository_DefaultWhenAbsent(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	got := repo.Get(context.Background())
	if !got.ApplicationsEnabled || got.DisabledMessage != "" {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestRepository_SaveThenGet(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	ctx := context.Background()

	want := Settings{ApplicationsEnabled: false, DisabledMessage: "Back next semester."}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := repo.Get(ctx); got != want {
		t.Fatalf("Get = %+v, want %+v", got, want)
	}

	// merge-on-write: a second save replaces fields, not the document identity
	want.ApplicationsEnabled = true
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := repo.Get(ctx); got != want {
		t.Fatalf("Get after second save = %+v, want %+v", got, want)
	}
}

// slowDocs blocks every read until the context gives up.
type slowDocs struct {
	store.Documents
}

func (slowDocs) FindByID(ctx context.Context, _ string, _ string, _ any) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRepository_GetWithinTimesOutToDefaults(t *testing.T) {
	repo := NewRepository(slowDocs{}, quietLogger())

	start := time.Now()
	got := repo.GetWithin(context.Background(), 50*time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("GetWithin took %v, deadline not honored", elapsed)
	}
	if got != Default() {
		t.Fatalf("got %+v, want defaults on timeout", got)
	}
}

func TestRepository_GetWithinFastPath(t *testing.T) {
	repo := NewRepository(store.NewMemory(), quietLogger())
	ctx := context.Background()
	want := Settings{ApplicationsEnabled: false, DisabledMessage: "closed"}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	if got := repo.GetWithin(ctx, time.Second); got != want {
		t.Fatalf("got %+v, want stored settings", got)
	}
}
