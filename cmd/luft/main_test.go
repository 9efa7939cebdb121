package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	cfgPath := filepath.Join(base, "luft.toml")
	content := fmt.Sprintf(`
version = "0.7.0"

[paths]
raw_data_dir = %q
summaries_dir = %q
capsules_dir = %q
log_dir = %q
db_path = %q
index_roots = [%q]
master_index = %q

[logging]
format = "json"
level = "error"
`,
		filepath.Join(base, "raw_csv"),
		filepath.Join(base, "summaries"),
		filepath.Join(base, "capsules"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "runs.db"),
		base,
		filepath.Join(base, "manifest_master_index.yaml"),
	)
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, base
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "luft schema v0.7.0") {
		t.Fatalf("unexpected version output: %s", out)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	if _, err := execute(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("config not created: %v", err)
	}

	if _, err := execute(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init to fail without --overwrite")
	}
	if _, err := execute(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite init: %v", err)
	}
}

func TestIntakeCommandEndToEnd(t *testing.T) {
	cfgPath, base := writeTestConfig(t)

	lines := []string{"frequency_hz,mode"}
	for i := 0; i < 120; i++ {
		lines = append(lines, fmt.Sprintf("%d,sweep", 2_000_000+i))
	}
	csvPath := filepath.Join(base, "input.csv")
	if err := os.WriteFile(csvPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out, err := execute(t, "--config", cfgPath, "intake", csvPath, "--audit")
	if err != nil {
		t.Fatalf("intake: %v\n%s", err, out)
	}
	if !strings.Contains(out, "validation PASSED") {
		t.Fatalf("expected pass summary:\n%s", out)
	}
	if !strings.Contains(out, "audit capsule written to") {
		t.Fatalf("expected audit notice:\n%s", out)
	}

	runsOut, err := execute(t, "--config", cfgPath, "runs")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(runsOut, "pass") || !strings.Contains(runsOut, csvPath) {
		t.Fatalf("run missing from history:\n%s", runsOut)
	}
}

func TestIntakeCommandFailsVerdict(t *testing.T) {
	cfgPath, base := writeTestConfig(t)

	csvPath := filepath.Join(base, "short.csv")
	if err := os.WriteFile(csvPath, []byte("a\n1\n2\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out, err := execute(t, "--config", cfgPath, "intake", csvPath)
	if err == nil {
		t.Fatalf("expected nonzero result for failed validation:\n%s", out)
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexCommandRebuildAndShow(t *testing.T) {
	cfgPath, base := writeTestConfig(t)

	manifestContent := `capsules:
  - capsule_id: cap-100
    timestamp_utc: "2026-08-01T00:00:00Z"
    status: green
    hash: sha256:abc
  - capsule_id: cap-100
    timestamp_utc: "2026-07-01T00:00:00Z"
    status: pending
    hash: sha256:def
    tags: [early]
`
	if err := os.WriteFile(filepath.Join(base, "manifest_lab.yaml"), []byte(manifestContent), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	out, err := execute(t, "--config", cfgPath, "index")
	if err != nil {
		t.Fatalf("index: %v\n%s", err, out)
	}
	if !strings.Contains(out, "with 1 capsules") {
		t.Fatalf("unexpected rebuild output:\n%s", out)
	}

	showOut, err := execute(t, "--config", cfgPath, "index", "show")
	if err != nil {
		t.Fatalf("index show: %v", err)
	}
	if !strings.Contains(showOut, "cap-100") || !strings.Contains(showOut, "status: green") {
		t.Fatalf("unexpected index contents:\n%s", showOut)
	}
	// The pending record loses on status but its tags survive on the winner.
	if !strings.Contains(showOut, "early") {
		t.Fatalf("losing record's tags must be unioned onto the winner:\n%s", showOut)
	}
}
