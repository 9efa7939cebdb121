package preflight_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"luft/internal/preflight"
	"luft/internal/testsupport"
)

func TestRunAllPassesWithPreparedDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := preflight.RunAll(cfg)
	if len(results) == 0 {
		t.Fatal("expected checks to run")
	}
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestMissingDirectoryFails(t *testing.T) {
	result := preflight.CheckDirectoryAccess("Capsules directory", filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestFileIsNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result := preflight.CheckDirectoryAccess("Log directory", path)
	if result.Passed || !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUnwritableDirectoryFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	path := filepath.Join(t.TempDir(), "readonly")
	if err := os.Mkdir(path, 0o500); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result := preflight.CheckDirectoryAccess("Summaries directory", path)
	if result.Passed || !strings.Contains(result.Detail, "insufficient permissions") {
		t.Fatalf("unexpected result: %+v", result)
	}
}
