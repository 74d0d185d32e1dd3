// Package listing holds the crate/version view types shared between the
// operations engine and the HTML renderer, kept separate from
// internal/ops so the renderer does not need to import the engine.
package listing

import "sort"

// Listing is one (name, version, yanked) tuple surfaced by List.
type Listing struct {
	Name    string
	Version string
	Yanked  bool
}

// CrateVersions groups a crate's Listings, already SemVer-sorted.
type CrateVersions struct {
	Name     string
	Versions []Listing
}

// GroupByName buckets flat Listings into per-crate, SemVer-ordered groups
// sorted by crate name, as the HTML renderer and list command both need.
func GroupByName(listings []Listing) []CrateVersions {
	pos := make(map[string]int)
	var groups []CrateVersions

	for _, l := range listings {
		i, ok := pos[l.Name]
		if !ok {
			i = len(groups)
			pos[l.Name] = i
			groups = append(groups, CrateVersions{Name: l.Name})
		}
		groups[i].Versions = append(groups[i].Versions, l)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
