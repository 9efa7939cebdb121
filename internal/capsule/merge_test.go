package capsule_test

import (
	"reflect"
	"testing"

	"luft/internal/capsule"
)

func rec(id, ts, status string, tags ...string) capsule.Record {
	return capsule.Record{
		CapsuleID:    id,
		TimestampUTC: ts,
		Status:       status,
		Hash:         "sha256:" + id + ts,
		Tags:         tags,
	}
}

func sourced(records ...capsule.Record) []capsule.Sourced {
	out := make([]capsule.Sourced, 0, len(records))
	for _, r := range records {
		out = append(out, capsule.Sourced{Record: r, Repo: "lab-a", Path: "manifest_lab.yaml"})
	}
	return out
}

func TestGreenBeatsPendingRegardlessOfOrder(t *testing.T) {
	green := rec("cap-001", "2026-08-20T12:00:00Z", capsule.StatusGreen)
	pending := rec("cap-001", "2026-08-19T08:00:00Z", "pending")

	for name, order := range map[string][]capsule.Record{
		"green first":   {green, pending},
		"pending first": {pending, green},
	} {
		result := capsule.Merge(sourced(order...))
		winner, ok := result.Index.Get("cap-001")
		if !ok {
			t.Fatalf("%s: capsule missing from index", name)
		}
		if winner.Status != capsule.StatusGreen {
			t.Fatalf("%s: expected green winner, got %+v", name, winner)
		}
	}
}

func TestEarlierTimestampWinsAmongEqualStatus(t *testing.T) {
	early := rec("cap-002", "2026-08-01T00:00:00Z", capsule.StatusGreen)
	late := rec("cap-002", "2026-08-15T00:00:00Z", capsule.StatusGreen)

	result := capsule.Merge(sourced(late, early))
	winner, _ := result.Index.Get("cap-002")
	if winner.TimestampUTC != early.TimestampUTC {
		t.Fatalf("expected earlier record to win, got %+v", winner)
	}
}

func TestMissingHashIsRejected(t *testing.T) {
	bad := capsule.Record{
		CapsuleID:    "cap-003",
		TimestampUTC: "2026-08-20T12:00:00Z",
		Status:       capsule.StatusGreen,
	}
	good := rec("cap-004", "2026-08-20T12:00:00Z", capsule.StatusGreen)

	result := capsule.Merge(sourced(bad, good))
	if result.Index.Len() != 1 {
		t.Fatalf("expected one admitted capsule, got %d", result.Index.Len())
	}
	if len(result.Rejected) != 1 || result.Rejected[0].Record.CapsuleID != "cap-003" {
		t.Fatalf("expected cap-003 rejected, got %+v", result.Rejected)
	}
	if _, ok := result.Index.Get("cap-003"); ok {
		t.Fatal("rejected capsule must not enter the index")
	}
}

func TestKeptWinnerAccumulatesTags(t *testing.T) {
	first := rec("cap-005", "2026-08-01T00:00:00Z", capsule.StatusGreen, "x")
	second := rec("cap-005", "2026-08-02T00:00:00Z", capsule.StatusGreen, "y", "x")
	third := rec("cap-005", "2026-08-03T00:00:00Z", capsule.StatusGreen, "z")

	result := capsule.Merge(sourced(first, second, third))
	winner, _ := result.Index.Get("cap-005")
	if !reflect.DeepEqual(winner.Tags, []string{"x", "y", "z"}) {
		t.Fatalf("unexpected tag union: %v", winner.Tags)
	}
	// Losers contribute tags only; everything else stays the winner's.
	if winner.TimestampUTC != first.TimestampUTC {
		t.Fatalf("winner identity changed: %+v", winner)
	}
}

func TestReplacementIsTotal(t *testing.T) {
	pending := rec("cap-006", "2026-08-01T00:00:00Z", "pending", "old-tag")
	green := rec("cap-006", "2026-08-05T00:00:00Z", capsule.StatusGreen, "new-tag")

	result := capsule.Merge(sourced(pending, green))
	winner, _ := result.Index.Get("cap-006")
	if !reflect.DeepEqual(winner.Tags, []string{"new-tag"}) {
		t.Fatalf("replacement must not carry the loser's tags: %v", winner.Tags)
	}
}

func TestIndexPreservesFirstSeenOrder(t *testing.T) {
	result := capsule.Merge(sourced(
		rec("cap-b", "2026-08-01T00:00:00Z", capsule.StatusGreen),
		rec("cap-a", "2026-08-01T00:00:00Z", capsule.StatusGreen),
		rec("cap-b", "2026-08-02T00:00:00Z", capsule.StatusGreen),
		rec("cap-c", "2026-08-01T00:00:00Z", capsule.StatusGreen),
	))
	if !reflect.DeepEqual(result.Index.IDs(), []string{"cap-b", "cap-a", "cap-c"}) {
		t.Fatalf("unexpected id order: %v", result.Index.IDs())
	}
}

func TestWinnerIsOrderIndependent(t *testing.T) {
	a := rec("cap-007", "2026-08-03T00:00:00Z", "pending", "p")
	b := rec("cap-007", "2026-08-02T00:00:00Z", capsule.StatusGreen, "g")
	c := rec("cap-007", "2026-08-01T00:00:00Z", "red", "r")

	orders := [][]capsule.Record{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, order := range orders {
		result := capsule.Merge(sourced(order...))
		winner, _ := result.Index.Get("cap-007")
		if winner.Status != capsule.StatusGreen || winner.TimestampUTC != b.TimestampUTC {
			t.Fatalf("order %v: expected the green record to win, got %+v", order, winner)
		}
	}
}

func TestMergeFillsProvenanceFromSource(t *testing.T) {
	result := capsule.Merge([]capsule.Sourced{{
		Record: rec("cap-008", "2026-08-01T00:00:00Z", capsule.StatusGreen),
		Repo:   "lab-b",
		Path:   "manifest_runs.json",
	}})
	winner, _ := result.Index.Get("cap-008")
	if winner.SourceRepo != "lab-b" || winner.ManifestPath != "manifest_runs.json" {
		t.Fatalf("provenance not filled: %+v", winner)
	}
}

func TestFromMapKeepsExtras(t *testing.T) {
	rec := capsule.FromMap(map[string]any{
		"capsule_id":    "cap-009",
		"timestamp_utc": "2026-08-01T00:00:00Z",
		"status":        "green",
		"hash":          "sha256:abc",
		"tags":          []any{"spectra", "run-7"},
		"instrument":    "vna-2",
		"temperature_k": 4.2,
	})
	if !rec.Admissible() {
		t.Fatalf("expected admissible record: %+v", rec)
	}
	if !reflect.DeepEqual(rec.Tags, []string{"spectra", "run-7"}) {
		t.Fatalf("unexpected tags: %v", rec.Tags)
	}
	if !reflect.DeepEqual(rec.ExtraKeys(), []string{"instrument", "temperature_k"}) {
		t.Fatalf("unexpected extras: %v", rec.ExtraKeys())
	}

	back := rec.ToMap()
	if back["instrument"] != "vna-2" || back["capsule_id"] != "cap-009" {
		t.Fatalf("round trip lost fields: %+v", back)
	}
}
