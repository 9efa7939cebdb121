// Package manifest discovers capsule manifest files, decodes their records,
// and writes the merged master index.
//
// Manifests are files named manifest_* with a .json, .yaml, or .yml
// extension, found anywhere under the configured scan roots. Each holds a
// top-level capsules list. The master index is YAML with one entry per
// capsule id, in the order the merge first saw each id.
package manifest
