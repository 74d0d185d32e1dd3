// Package htmlrender produces the registry's static landing page: a
// version picker per crate that resolves to a download URL with no
// client-side scripting required (spec.md §4.F).
package htmlrender

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/package-url/packageurl-go"

	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/listing"
	"github.com/integer32llc/margo/internal/semverx"
)

// Page carries everything the template needs.
type Page struct {
	BaseURL      string
	RegistryName string
	Crates       []listing.CrateVersions
}

type versionOption struct {
	Label    string
	URL      string
	Selected bool
}

type crateView struct {
	Name     string
	PURL     string
	Versions []versionOption
}

type templateData struct {
	RegistryName string
	ConfigStanza string
	CargoAddLine string
	Crates       []crateView
}

// Render builds the complete index.html document for page.
func Render(page Page) (string, error) {
	name := page.RegistryName
	if name == "" {
		name = "margo"
	}

	data := templateData{
		RegistryName: name,
		ConfigStanza: fmt.Sprintf("[registries]\n%s = { index = \"sparse+%s\" }", name, page.BaseURL),
		CargoAddLine: fmt.Sprintf("cargo add --registry %s some-crate-name", name),
	}

	for _, c := range page.Crates {
		if len(c.Versions) == 0 {
			continue
		}
		data.Crates = append(data.Crates, buildCrateView(page.BaseURL, c))
	}

	var buf strings.Builder
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildCrateView sorts a crate's versions ascending by SemVer and marks
// the default selection as the highest non-yanked version, falling back
// to the highest version overall when every version is yanked
// (original_source's most_interesting rule; spec.md §4.F, §8 scenario 3).
func buildCrateView(baseURL string, c listing.CrateVersions) crateView {
	versions := make([]string, len(c.Versions))
	byVersion := make(map[string]listing.Listing, len(c.Versions))
	for i, v := range c.Versions {
		versions[i] = v.Version
		byVersion[v.Version] = v
	}
	semverx.Sort(versions)

	lastNonYanked := -1
	for i, v := range versions {
		if !byVersion[v].Yanked {
			lastNonYanked = i
		}
	}
	selectedIdx := lastNonYanked
	if selectedIdx == -1 {
		selectedIdx = len(versions) - 1
	}

	view := crateView{
		Name: c.Name,
		PURL: purlFor(c.Name, ""),
	}
	for i, v := range versions {
		l := byVersion[v]
		label := v
		if l.Yanked {
			label += " (yanked)"
		}
		view.Versions = append(view.Versions, versionOption{
			Label:    label,
			URL:      downloadURL(baseURL, c.Name, v),
			Selected: i == selectedIdx,
		})
	}
	return view
}

func downloadURL(baseURL, name, version string) string {
	return fmt.Sprintf("%s%s", baseURL, "/"+layout.ArtifactPath(name, version))
}

func purlFor(name, version string) string {
	p := packageurl.NewPackageURL("cargo", "", name, version, nil, "")
	return p.ToString()
}

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))
