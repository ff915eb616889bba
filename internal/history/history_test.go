/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	base := time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Result{GameID: "abc", LeftName: "Owls", LeftScore: 120, RightName: "Bats", RightScore: 95, FinishedAt: base})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	if _, err := store.Record(ctx, Result{GameID: "abc", LeftName: "Owls", LeftScore: 10, RightName: "Bats", RightScore: 40, FinishedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("record: %v", err)
	}

	results, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RightScore != 40 || results[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", results)
	}
	if !results[1].FinishedAt.Equal(base) {
		t.Fatalf("expected %v, got %v", base, results[1].FinishedAt)
	}

	limited, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}
