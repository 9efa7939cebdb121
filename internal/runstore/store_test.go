package runstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"luft/internal/runstore"
	"luft/internal/services"
	"luft/internal/testsupport"
)

func record(id string, started time.Time, passed bool) *runstore.Record {
	return &runstore.Record{
		ID:           id,
		Source:       "/data/raw/" + id + ".csv",
		FileHash:     "hash-" + id,
		RowCount:     120,
		ColumnCount:  3,
		QualityScore: 0.98,
		Passed:       passed,
		InfoCount:    3,
		ProfileJSON:  `{"total_records":120}`,
		StartedAt:    started,
		FinishedAt:   started.Add(2 * time.Second),
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	started := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	want := record("run-1", started, true)
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetByID(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Source != want.Source || got.FileHash != want.FileHash || !got.Passed {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.FinishedAt.Equal(want.FinishedAt) {
		t.Fatalf("timestamps mismatch: %+v", got)
	}

	var profile map[string]any
	if err := json.Unmarshal([]byte(got.ProfileJSON), &profile); err != nil {
		t.Fatalf("profile json corrupted: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.Save(context.Background(), record(id, base.Add(time.Duration(i)*time.Hour), i%2 == 0)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	records, err := store.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "run-c" || records[1].ID != "run-b" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
}

func TestGetMissingRunIsNotFound(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	_, err := store.GetByID(context.Background(), "no-such-run")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := runstore.Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Save(context.Background(), record("run-persist", time.Now().UTC(), true)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := runstore.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if _, err := second.GetByID(context.Background(), "run-persist"); err != nil {
		t.Fatalf("record lost across reopen: %v", err)
	}
}
