package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"luft/internal/logging"
	"luft/internal/services"
)

func TestNewWritesConsoleLineToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "luft.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "intake")
	component.Info("profiling complete", logging.Int("rows", 120))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO intake: profiling complete") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "rows=120") {
		t.Fatalf("expected rows attribute in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ctx.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-7")
	ctx = services.WithDataset(ctx, "chi.csv")
	logging.WithContext(ctx, logger).Info("started")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "run_id=run-7") {
		t.Fatalf("expected run_id in %q", line)
	}
	if !strings.Contains(line, "dataset=chi.csv") {
		t.Fatalf("expected dataset in %q", line)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}
