package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"luft/internal/capsule"
	"luft/internal/services"
)

// document is the on-disk manifest shape: a top-level capsules list.
type document struct {
	Capsules []map[string]any `json:"capsules" yaml:"capsules"`
}

// Load reads one manifest file and returns its capsule records tagged with
// the hit's root and path. JSON files decode as JSON; everything else is
// treated as YAML. A manifest with no capsules list yields an empty slice.
func Load(hit Hit) ([]capsule.Sourced, error) {
	raw, err := os.ReadFile(hit.Path)
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "manifest", "load", "read "+hit.Path, err)
	}

	var doc document
	if strings.EqualFold(filepath.Ext(hit.Path), ".json") {
		err = json.Unmarshal(raw, &doc)
	} else {
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrIngest, "manifest", "load", "decode "+hit.Path, err)
	}

	sourced := make([]capsule.Sourced, 0, len(doc.Capsules))
	for _, entry := range doc.Capsules {
		sourced = append(sourced, capsule.Sourced{
			Record: capsule.FromMap(entry),
			Repo:   hit.Root,
			Path:   hit.Path,
		})
	}
	return sourced, nil
}

// LoadAll loads every hit in order and concatenates the results. A single
// unreadable or malformed manifest aborts the load; partial indexes are worse
// than no index.
func LoadAll(hits []Hit) ([]capsule.Sourced, error) {
	var all []capsule.Sourced
	for _, hit := range hits {
		sourced, err := Load(hit)
		if err != nil {
			return nil, err
		}
		all = append(all, sourced...)
	}
	return all, nil
}
