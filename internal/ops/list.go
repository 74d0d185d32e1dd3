package ops

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/integer32llc/margo/internal/index"
	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/listing"
	"github.com/integer32llc/margo/internal/semverx"
)

// Listing and CrateVersions are re-exported from internal/listing so
// callers of this package don't need a second import; internal/htmlrender
// depends on internal/listing directly to avoid importing internal/ops.
type Listing = listing.Listing
type CrateVersions = listing.CrateVersions

// GroupByName buckets flat Listings into per-crate, SemVer-ordered groups.
func GroupByName(listings []Listing) []CrateVersions {
	return listing.GroupByName(listings)
}

var nonIndexNames = map[string]bool{
	layout.ConfigFileName:      true,
	layout.MargoConfigFileName: true,
	layout.IndexHTMLName:       true,
}

// List walks the registry root's prefix directories and returns every
// published version, sorted lexicographically by name then ascending by
// SemVer (spec.md §4.E).
func (e *Engine) List(registryDir string) ([]Listing, error) {
	var out []Listing

	err := filepath.WalkDir(registryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != registryDir && isExcludedDir(registryDir, path) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if nonIndexNames[name] || strings.HasSuffix(name, ".css") || strings.HasSuffix(name, ".map") || strings.HasSuffix(name, ".js") || strings.HasPrefix(name, ".") {
			return nil
		}

		records, err := index.Load(path)
		if err != nil {
			return err
		}
		for _, rec := range records {
			out = append(out, Listing{Name: rec.Name, Version: rec.Vers, Yanked: rec.Yanked})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking registry %s: %w", registryDir, err)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return semverx.Less(out[i].Version, out[j].Version)
	})

	return out, nil
}

func isExcludedDir(registryDir, path string) bool {
	rel, err := filepath.Rel(registryDir, path)
	if err != nil {
		return false
	}
	top := strings.SplitN(rel, string(filepath.Separator), 2)[0]
	return top == layout.CratesDirName || top == "assets"
}
