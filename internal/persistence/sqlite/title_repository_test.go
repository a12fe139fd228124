package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/channel-scheduler/internal/persistence"
)

func TestTitleRepository_UpsertGetDelete(t *testing.T) {
	t.Parallel()

	repo := NewTitleRepository(openTestStore(t))
	ctx := context.Background()

	if _, err := repo.GetTitle(ctx, "c1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing title, got %v", err)
	}

	if err := repo.UpsertTitle(ctx, "c1", "Raid Night"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	title, err := repo.GetTitle(ctx, "c1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if title.Title != "Raid Night" {
		t.Fatalf("unexpected title %q", title.Title)
	}

	// Upsert replaces unconditionally.
	if err := repo.UpsertTitle(ctx, "c1", "Raid Night v2"); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	title, err = repo.GetTitle(ctx, "c1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if title.Title != "Raid Night v2" {
		t.Fatalf("expected replacement, got %q", title.Title)
	}

	if err := repo.DeleteTitle(ctx, "c1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetTitle(ctx, "c1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent title stays silent; clear is idempotent.
	if err := repo.DeleteTitle(ctx, "c1"); err != nil {
		t.Fatalf("delete of missing title failed: %v", err)
	}
}

func TestTitleRepository_ListOrderedByTitle(t *testing.T) {
	t.Parallel()

	repo := NewTitleRepository(openTestStore(t))
	ctx := context.Background()

	for channel, title := range map[string]string{
		"c1": "Zulu",
		"c2": "Alpha",
		"c3": "Mike",
	} {
		if err := repo.UpsertTitle(ctx, channel, title); err != nil {
			t.Fatalf("upsert %s failed: %v", channel, err)
		}
	}

	titles, err := repo.ListTitles(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(titles) != 3 {
		t.Fatalf("expected 3 titles, got %d", len(titles))
	}
	if titles[0].Title != "Alpha" || titles[1].Title != "Mike" || titles[2].Title != "Zulu" {
		t.Fatalf("titles not ordered: %+v", titles)
	}
}
