package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the current configuration schema version. Configuration
// files declare their version so older files are rejected when the schema
// changes incompatibly.
const SchemaVersion = "0.7.0"

// IsCompatible checks whether a configuration file's declared version is
// compatible with SchemaVersion using a caret constraint. For 0.x versions
// this allows patch changes only, per semantic versioning.
//
// Returns false (with no error) when the versions are incompatible, and an
// error when either version string is invalid.
func IsCompatible(fileVersion string) (bool, error) {
	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return false, fmt.Errorf("invalid schema version: %w", err)
	}

	v, err := semver.NewVersion(fileVersion)
	if err != nil {
		return false, fmt.Errorf("invalid config version %q: %w", fileVersion, err)
	}

	return constraint.Check(v), nil
}
