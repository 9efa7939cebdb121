package manifest

import (
	"io/fs"
	"path/filepath"
	"strings"

	"luft/internal/services"
)

// manifestPrefix and manifestExts define which files count as capsule
// manifests during a scan.
const manifestPrefix = "manifest_"

var manifestExts = map[string]struct{}{".json": {}, ".yaml": {}, ".yml": {}}

// Hit is one manifest file found during a scan, tagged with the root it was
// found under.
type Hit struct {
	Root string
	Path string
}

// IsManifestName reports whether a base filename looks like a capsule
// manifest: manifest_*.json, manifest_*.yaml, or manifest_*.yml.
func IsManifestName(name string) bool {
	if !strings.HasPrefix(name, manifestPrefix) {
		return false
	}
	_, ok := manifestExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Scan walks each root and returns every manifest file beneath it, in walk
// order. Roots are walked in the order given, so the caller controls merge
// precedence by ordering its roots.
func Scan(roots []string) ([]Hit, error) {
	var hits []Hit
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if IsManifestName(entry.Name()) {
				hits = append(hits, Hit{Root: root, Path: path})
			}
			return nil
		})
		if err != nil {
			return nil, services.Wrap(services.ErrIngest, "manifest", "scan", "walk root "+root, err)
		}
	}
	return hits, nil
}
