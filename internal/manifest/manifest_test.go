package manifest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"luft/internal/capsule"
	"luft/internal/manifest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestIsManifestName(t *testing.T) {
	cases := map[string]bool{
		"manifest_lab.yaml":    true,
		"manifest_runs.json":   true,
		"manifest_archive.yml": true,
		"manifest_notes.txt":   false,
		"readme.yaml":          false,
		"manifest_":            false,
	}
	for name, want := range cases {
		if got := manifest.IsManifestName(name); got != want {
			t.Errorf("IsManifestName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestScanFindsNestedManifests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "manifest_top.yaml", "capsules: []\n")
	writeFile(t, root, filepath.Join("sub", "deep"), "")
	nested := writeFile(t, root, filepath.Join("sub", "manifest_nested.json"), `{"capsules": []}`)
	writeFile(t, root, "notes.yaml", "ignored: true\n")

	hits, err := manifest.Scan([]string{root})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %+v", hits)
	}
	found := false
	for _, hit := range hits {
		if hit.Path == nested && hit.Root == root {
			found = true
		}
	}
	if !found {
		t.Fatalf("nested manifest not found in %+v", hits)
	}
}

func TestLoadYAMLManifest(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "manifest_lab.yaml", strings.TrimSpace(`
capsules:
  - capsule_id: cap-001
    timestamp_utc: "2026-08-01T00:00:00Z"
    status: green
    hash: sha256:aa
    tags: [spectra]
    instrument: vna-2
`)+"\n")

	sourced, err := manifest.Load(manifest.Hit{Root: root, Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sourced) != 1 {
		t.Fatalf("expected 1 capsule, got %d", len(sourced))
	}
	rec := sourced[0].Record
	if rec.CapsuleID != "cap-001" || rec.Status != "green" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !reflect.DeepEqual(rec.ExtraKeys(), []string{"instrument"}) {
		t.Fatalf("unexpected extras: %v", rec.ExtraKeys())
	}
	if sourced[0].Repo != root || sourced[0].Path != path {
		t.Fatalf("provenance not set: %+v", sourced[0])
	}
}

func TestLoadJSONManifest(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "manifest_runs.json", `{
  "capsules": [
    {"capsule_id": "cap-002", "timestamp_utc": "2026-08-02T00:00:00Z", "status": "red", "hash": "sha256:bb"}
  ]
}`)

	sourced, err := manifest.Load(manifest.Hit{Root: root, Path: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sourced) != 1 || sourced[0].Record.CapsuleID != "cap-002" {
		t.Fatalf("unexpected capsules: %+v", sourced)
	}
}

func TestLoadMalformedManifestFails(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "manifest_bad.yaml", "capsules: [unclosed\n")

	if _, err := manifest.Load(manifest.Hit{Root: root, Path: path}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEncodeIndexPreservesOrder(t *testing.T) {
	result := capsule.Merge([]capsule.Sourced{
		{Record: capsule.Record{CapsuleID: "zz-first", TimestampUTC: "2026-08-01T00:00:00Z", Status: "green", Hash: "h1"}},
		{Record: capsule.Record{CapsuleID: "aa-second", TimestampUTC: "2026-08-02T00:00:00Z", Status: "red", Hash: "h2", Tags: []string{"t"}}},
	})

	var buf bytes.Buffer
	if err := manifest.EncodeIndex(&buf, result.Index); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()

	// First-seen order beats alphabetical order.
	if strings.Index(out, "zz-first:") > strings.Index(out, "aa-second:") {
		t.Fatalf("index order not preserved:\n%s", out)
	}

	var decoded map[string]map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if decoded["zz-first"]["hash"] != "h1" {
		t.Fatalf("round trip lost fields: %+v", decoded)
	}
}

func TestWriteIndexReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest_master_index.yaml")
	if err := os.WriteFile(path, []byte("stale: true\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	result := capsule.Merge([]capsule.Sourced{
		{Record: capsule.Record{CapsuleID: "cap-009", TimestampUTC: "2026-08-01T00:00:00Z", Status: "green", Hash: "h9"}},
	})
	if err := manifest.WriteIndex(result.Index, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.Contains(string(raw), "stale") || !strings.Contains(string(raw), "cap-009") {
		t.Fatalf("unexpected index content:\n%s", raw)
	}
}
