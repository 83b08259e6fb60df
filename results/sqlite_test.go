package results

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/vrlocomotion/ecs/component"
	_ "modernc.org/sqlite"
)

func TestStoreRecordAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "results.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	inputs := []Result{
		{Mode: "free_walk", Score: 3, Duration: 60, Seed: 1, RecordedAt: at},
		{Mode: "teleport", Score: 7, Duration: 60, Seed: 2, RecordedAt: at.Add(time.Minute)},
		{Mode: "free_walk", Score: 5, Duration: 60, Seed: 3, RecordedAt: at.Add(2 * time.Minute)},
	}
	for _, r := range inputs {
		if _, err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	cases := []struct {
		name   string
		limit  int
		scores []int
	}{
		{"all", 0, []int{5, 7, 3}},
		{"latest_two", 2, []int{5, 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := store.List(ctx, c.limit)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != len(c.scores) {
				t.Fatalf("expected %d results, got %d", len(c.scores), len(got))
			}
			for i, r := range got {
				if r.Score != c.scores[i] {
					t.Fatalf("result %d: expected score %d, got %d", i, c.scores[i], r.Score)
				}
			}
		})
	}

	got, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !got[0].RecordedAt.Equal(at.Add(2*time.Minute)) || got[0].Mode != "free_walk" || got[0].Seed != 3 {
		t.Fatalf("unexpected latest row: %+v", got[0])
	}

	best, err := store.Best(ctx)
	if err != nil {
		t.Fatalf("Best: %v", err)
	}
	if best["free_walk"] != 5 || best["teleport"] != 7 {
		t.Fatalf("unexpected best scores: %v", best)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := store.Record(ctx, Result{Mode: "look_walk", Score: 2, Duration: 60}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var (
		mode  string
		score int
	)
	if err := db.QueryRow(`SELECT mode, score FROM sessions`).Scan(&mode, &score); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if mode != "look_walk" || score != 2 {
		t.Fatalf("row mismatch: mode=%q score=%d", mode, score)
	}
}

func TestStoreClosed(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := store.Record(context.Background(), Result{Mode: "teleport"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestRecorderWritesMode(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	rec := &Recorder{Store: store, Seed: 9}
	if err := rec.RecordSession(component.Teleport, 4, 60); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	got, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Mode != "teleport" || got[0].Score != 4 || got[0].Seed != 9 {
		t.Fatalf("unexpected results: %+v", got)
	}

	var nilRec *Recorder
	if err := nilRec.RecordSession(component.FreeWalk, 1, 60); err != nil {
		t.Fatalf("nil recorder should be a no-op, got %v", err)
	}
}
