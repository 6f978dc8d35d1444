// Package manifest reads dependency declarations from Cargo.toml files.
package manifest

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/cratewalk/cratewalk/pkg/errors"
)

// Cargo holds the dependency-relevant parts of a Cargo.toml manifest.
type Cargo struct {
	Name         string   // Package name ("" for pure workspace manifests)
	Version      string   // Package version, if declared
	Dependencies []string // Union of all dependency sections, sorted
}

// ParseCargo extracts the dependency names from Cargo.toml text.
//
// The result is the sorted union of keys from the dependencies,
// dev-dependencies, build-dependencies, workspace.dependencies, and
// workspace.dev-dependencies sections. Version specifiers - both the
// shorthand string form and the detailed table form - are discarded.
func ParseCargo(data []byte) (*Cargo, error) {
	var file cargoFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse Cargo.toml")
	}

	set := make(map[string]struct{})
	for _, section := range []map[string]any{
		file.Dependencies,
		file.DevDependencies,
		file.BuildDependencies,
		file.Workspace.Dependencies,
		file.Workspace.DevDependencies,
	} {
		for name := range section {
			set[name] = struct{}{}
		}
	}

	deps := make([]string, 0, len(set))
	for name := range set {
		deps = append(deps, name)
	}
	slices.Sort(deps)

	return &Cargo{
		Name:         file.Package.Name,
		Version:      file.Package.Version,
		Dependencies: deps,
	}, nil
}

// LoadCargo reads and parses the Cargo.toml at path.
func LoadCargo(path string) (*Cargo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return ParseCargo(data)
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
	Workspace         struct {
		Dependencies    map[string]any `toml:"dependencies"`
		DevDependencies map[string]any `toml:"dev-dependencies"`
	} `toml:"workspace"`
}
