// Package semverx adapts golang.org/x/mod/semver to Cargo-style version
// strings, which (unlike Go's) do not carry a leading "v".
package semverx

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Valid reports whether v is a SemVer 2.0 version string.
func Valid(v string) bool {
	return semver.IsValid(canonicalPrefix(v))
}

// Validate returns an error unless v is a well-formed SemVer 2.0 version.
func Validate(v string) error {
	if !Valid(v) {
		return fmt.Errorf("%q is not a valid SemVer version", v)
	}
	return nil
}

// Compare returns -1, 0, or +1 following SemVer 2.0 precedence rules,
// including pre-release ordering. It never falls back to string comparison.
func Compare(a, b string) int {
	return semver.Compare(canonicalPrefix(a), canonicalPrefix(b))
}

// Less reports whether a sorts strictly before b by SemVer precedence.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort orders versions ascending by SemVer precedence, in place.
func Sort(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		return Less(versions[i], versions[j])
	})
}

// Highest returns the index of the greatest version in versions, or -1 if empty.
func Highest(versions []string) int {
	if len(versions) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(versions); i++ {
		if Compare(versions[i], versions[best]) > 0 {
			best = i
		}
	}
	return best
}

func canonicalPrefix(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
