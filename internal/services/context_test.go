package services_test

import (
	"context"
	"testing"

	"luft/internal/services"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-123")
	id, ok := services.RunIDFromContext(ctx)
	if !ok || id != "run-123" {
		t.Fatalf("expected run id to round-trip, got %q ok=%v", id, ok)
	}
}

func TestEmptyValuesAreNotStored(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "")
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id for empty value")
	}
	ctx = services.WithDataset(context.Background(), "")
	if _, ok := services.DatasetFromContext(ctx); ok {
		t.Fatal("expected no dataset for empty value")
	}
}

func TestDatasetAndRequestID(t *testing.T) {
	ctx := services.WithDataset(context.Background(), "raw_csv/chi.csv")
	ctx = services.WithRequestID(ctx, "req-1")
	if ds, ok := services.DatasetFromContext(ctx); !ok || ds != "raw_csv/chi.csv" {
		t.Fatalf("unexpected dataset: %q", ds)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-1" {
		t.Fatalf("unexpected request id: %q", rid)
	}
}
