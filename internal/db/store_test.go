package db

import (
	"context"
	"testing"
	"time"

	"github.com/Joseda-hg/hrdesk/internal/model"
)

func TestSessionRoundTrip(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, ok, err := store.LoadSession(ctx); err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}

	created := time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)
	err := store.SaveSession(ctx, model.SavedSession{Token: "abc", Role: model.RoleHR, Name: "Hana", Remember: true, CreatedAt: created})
	if err != nil {
		t.Fatalf("save session: %v", err)
	}

	saved, ok, err := store.LoadSession(ctx)
	if err != nil || !ok {
		t.Fatalf("load session: ok=%v err=%v", ok, err)
	}
	if saved.Token != "abc" || saved.Role != model.RoleHR || saved.Name != "Hana" || !saved.Remember {
		t.Fatalf("unexpected session %+v", saved)
	}
	if !saved.CreatedAt.Equal(created) {
		t.Fatalf("expected created %v, got %v", created, saved.CreatedAt)
	}

	if err := store.SaveSession(ctx, model.SavedSession{Token: "def", Role: model.RoleEmployee}); err != nil {
		t.Fatalf("replace session: %v", err)
	}
	saved, _, err = store.LoadSession(ctx)
	if err != nil {
		t.Fatalf("load replaced session: %v", err)
	}
	if saved.Token != "def" || saved.Remember {
		t.Fatalf("expected replaced session, got %+v", saved)
	}

	if err := store.DeleteSession(ctx); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := store.LoadSession(ctx); ok {
		t.Fatalf("expected session to be deleted")
	}
}

func TestSaveSessionRequiresToken(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveSession(context.Background(), model.SavedSession{Token: "  "}); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestActivityNewestFirst(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, time.September, 10, 9, 0, 0, 0, time.UTC)
	for i, kind := range []string{"check-in", "leave", "check-out"} {
		at := base.Add(time.Duration(i) * time.Hour)
		store.now = func() time.Time { return at }
		if err := store.AddActivity(ctx, kind, "details"); err != nil {
			t.Fatalf("add activity: %v", err)
		}
	}

	entries, err := store.ListActivity(ctx, 2)
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != "check-out" || entries[1].Kind != "leave" {
		t.Fatalf("unexpected order: %q, %q", entries[0].Kind, entries[1].Kind)
	}

	removed, err := store.PruneActivity(ctx, base.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("prune activity: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned entry, got %d", removed)
	}

	if err := store.AddActivity(ctx, " ", ""); err == nil {
		t.Fatalf("expected error for empty kind")
	}
}

func newTestStore(t *testing.T) (*Store, func()) {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewStore(db), func() {
		_ = db.Close()
	}
}
