package archive

import (
	"fmt"
	"strings"

	"github.com/integer32llc/margo/internal/index"
)

// rawManifest is the subset of Cargo.toml this reader understands. Table
// values for dependency entries are decoded as map[string]any because a
// dependency may be written either as an inline version string or as a
// table ({version = "...", features = [...], ...}); normalizeDependency
// handles both shapes.
type rawManifest struct {
	Package struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Links       string `toml:"links"`
		RustVersion string `toml:"rust-version"`
	} `toml:"package"`

	Dependencies      map[string]any           `toml:"dependencies"`
	DevDependencies   map[string]any           `toml:"dev-dependencies"`
	BuildDependencies map[string]any           `toml:"build-dependencies"`
	Target            map[string]targetSection `toml:"target"`
	Features          map[string][]string      `toml:"features"`
}

type targetSection struct {
	Dependencies      map[string]any `toml:"dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

const (
	kindNormal = "normal"
	kindBuild  = "build"
)

// normalizeAllDependencies flattens [dependencies], [build-dependencies],
// and every [target.<cfg>.dependencies]/[target.<cfg>.build-dependencies]
// table into a single deps list, tagging per-target entries with their
// cfg string. dev-dependencies are intentionally dropped (spec.md §4.A,
// §1 Non-goals: "no development-dependency tracking in the index").
func normalizeAllDependencies(raw rawManifest) ([]index.Dependency, error) {
	deps := make([]index.Dependency, 0)

	add := func(table map[string]any, kind string, target *string) error {
		for name, value := range table {
			dep, err := normalizeDependency(name, kind, target, value)
			if err != nil {
				return err
			}
			deps = append(deps, dep)
		}
		return nil
	}

	if err := add(raw.Dependencies, kindNormal, nil); err != nil {
		return nil, err
	}
	if err := add(raw.BuildDependencies, kindBuild, nil); err != nil {
		return nil, err
	}
	for cfg, section := range raw.Target {
		cfg := cfg
		if err := add(section.Dependencies, kindNormal, &cfg); err != nil {
			return nil, err
		}
		if err := add(section.BuildDependencies, kindBuild, &cfg); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

// normalizeDependency turns one Cargo.toml dependency entry into an Index
// Record dependency descriptor. An inline version string is equivalent to
// {version = "..."}. A package = "X" rename yields name = X, package =
// manifestKey, matching original_source's adapt_dependency.
func normalizeDependency(manifestKey, kind string, target *string, value any) (index.Dependency, error) {
	dep := index.Dependency{
		Name:            manifestKey,
		DefaultFeatures: true,
		Kind:            kind,
		Target:          target,
	}

	switch v := value.(type) {
	case string:
		dep.Req = v
		return dep, nil

	case map[string]any:
		if req, ok := v["version"].(string); ok {
			dep.Req = req
		}
		if feats, ok := v["features"].([]any); ok {
			for _, f := range feats {
				if s, ok := f.(string); ok {
					dep.Features = append(dep.Features, s)
				}
			}
		}
		if optional, ok := v["optional"].(bool); ok {
			dep.Optional = optional
		}
		if df, ok := v["default-features"].(bool); ok {
			dep.DefaultFeatures = df
		}
		if reg, ok := v["registry"].(string); ok {
			dep.Registry = &reg
		}
		if pkg, ok := v["package"].(string); ok {
			renamed := pkg
			key := manifestKey
			dep.Name = renamed
			dep.Package = &key
		}
		return dep, nil

	default:
		return index.Dependency{}, fmt.Errorf("dependency %q: unsupported manifest shape %T", manifestKey, value)
	}
}

// splitFeatures separates a Cargo.toml [features] table into the plain
// "features" map and the "features2" map (schema v2), which holds any
// value using namespaced (dep:) or weak (?/) syntax.
func splitFeatures(raw map[string][]string) (map[string][]string, map[string][]string) {
	features := make(map[string][]string)
	features2 := make(map[string][]string)

	for name, values := range raw {
		var plain, namespaced []string
		for _, v := range values {
			if strings.Contains(v, "dep:") || strings.Contains(v, "?/") {
				namespaced = append(namespaced, v)
			} else {
				plain = append(plain, v)
			}
		}
		if len(namespaced) > 0 {
			features2[name] = values
		} else {
			features[name] = plain
		}
	}

	return features, features2
}
