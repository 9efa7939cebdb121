package manifest

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"luft/internal/capsule"
	"luft/internal/services"
)

// canonicalFieldOrder fixes the emission order of the schema fields inside
// each index entry. Passthrough fields follow, sorted by key.
var canonicalFieldOrder = []string{
	"capsule_id", "timestamp_utc", "status", "hash",
	"tags", "source_repo", "manifest_path",
}

// WriteIndex encodes the master index as YAML at path, one top-level entry
// per capsule id in first-seen order. The file is written atomically via a
// temp file rename.
func WriteIndex(index *capsule.Index, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".master-index-*")
	if err != nil {
		return services.Wrap(services.ErrStore, "manifest", "write", "create temp index", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeIndex(tmp, index); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return services.Wrap(services.ErrStore, "manifest", "write", "flush temp index", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return services.Wrap(services.ErrStore, "manifest", "write", "replace "+path, err)
	}
	return nil
}

// EncodeIndex streams the index as YAML. Encoding goes through yaml.Node
// because the mapping order is part of the format: plain map encoding would
// sort capsule ids alphabetically and lose the first-seen order.
func EncodeIndex(w io.Writer, index *capsule.Index) error {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, id := range index.IDs() {
		rec, _ := index.Get(id)
		entry, err := recordNode(rec)
		if err != nil {
			return services.Wrap(services.ErrStore, "manifest", "encode", "encode capsule "+id, err)
		}
		root.Content = append(root.Content, scalarNode(id), entry)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return services.Wrap(services.ErrStore, "manifest", "encode", "encode master index", err)
	}
	return enc.Close()
}

func recordNode(rec capsule.Record) (*yaml.Node, error) {
	fields := rec.ToMap()
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	appendField := func(key string) error {
		value, ok := fields[key]
		if !ok {
			return nil
		}
		var valueNode yaml.Node
		if err := valueNode.Encode(value); err != nil {
			return err
		}
		node.Content = append(node.Content, scalarNode(key), &valueNode)
		return nil
	}

	for _, key := range canonicalFieldOrder {
		if err := appendField(key); err != nil {
			return nil, err
		}
	}
	for _, key := range rec.ExtraKeys() {
		if err := appendField(key); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
