package capsule

import "sort"

// Record is one capsule: a self-contained description of an observed result,
// keyed by identifier and carrying status and provenance. CapsuleID,
// TimestampUTC, Status, and Hash are required for admission into a merge;
// everything else is optional. Extra preserves passthrough fields verbatim.
type Record struct {
	CapsuleID    string         `json:"capsule_id" yaml:"capsule_id"`
	TimestampUTC string         `json:"timestamp_utc" yaml:"timestamp_utc"`
	Status       string         `json:"status" yaml:"status"`
	Hash         string         `json:"hash" yaml:"hash"`
	Tags         []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	SourceRepo   string         `json:"source_repo,omitempty" yaml:"source_repo,omitempty"`
	ManifestPath string         `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
	Extra        map[string]any `json:"-" yaml:"-"`
}

// StatusGreen marks a capsule whose producing run passed validation.
const StatusGreen = "green"

// StatusRed marks a capsule whose producing run failed validation.
const StatusRed = "red"

// Admissible reports whether the record carries all four required fields.
func (r Record) Admissible() bool {
	return r.CapsuleID != "" && r.TimestampUTC != "" && r.Status != "" && r.Hash != ""
}

// reservedKeys are the schema fields lifted out of raw capsule maps.
var reservedKeys = map[string]struct{}{
	"capsule_id": {}, "timestamp_utc": {}, "status": {}, "hash": {},
	"tags": {}, "source_repo": {}, "manifest_path": {},
}

// FromMap builds a Record from a decoded manifest entry, lifting the known
// schema fields and keeping everything else in Extra.
func FromMap(m map[string]any) Record {
	rec := Record{
		CapsuleID:    stringField(m, "capsule_id"),
		TimestampUTC: stringField(m, "timestamp_utc"),
		Status:       stringField(m, "status"),
		Hash:         stringField(m, "hash"),
		SourceRepo:   stringField(m, "source_repo"),
		ManifestPath: stringField(m, "manifest_path"),
		Tags:         stringSlice(m["tags"]),
	}
	for key, value := range m {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = value
	}
	return rec
}

// ToMap flattens the record back to a plain map for serialization, extras
// included. Extra keys are emitted in sorted order by the YAML writer.
func (r Record) ToMap() map[string]any {
	m := make(map[string]any, 7+len(r.Extra))
	m["capsule_id"] = r.CapsuleID
	m["timestamp_utc"] = r.TimestampUTC
	m["status"] = r.Status
	m["hash"] = r.Hash
	if len(r.Tags) > 0 {
		m["tags"] = append([]string(nil), r.Tags...)
	}
	if r.SourceRepo != "" {
		m["source_repo"] = r.SourceRepo
	}
	if r.ManifestPath != "" {
		m["manifest_path"] = r.ManifestPath
	}
	for key, value := range r.Extra {
		m[key] = value
	}
	return m
}

// ExtraKeys returns the passthrough field names in sorted order.
func (r Record) ExtraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for key := range r.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func stringSlice(v any) []string {
	switch vals := v.(type) {
	case []string:
		return append([]string(nil), vals...)
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
