// Package layout translates crate names and versions into the relative
// file paths Cargo's sparse-index convention expects under a registry root.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for empty or non-ASCII-identifier crate names.
var ErrInvalidName = errors.New("invalid crate name")

const (
	// ConfigFileName is Cargo's own registry-discovery document.
	ConfigFileName = "config.json"
	// MargoConfigFileName is margo's own registry configuration file.
	MargoConfigFileName = "margo.toml"
	// CratesDirName holds stored .crate artifacts.
	CratesDirName = "crates"
	// IndexHTMLName is the landing page written at the registry root.
	IndexHTMLName = "index.html"
)

// ValidateName enforces Cargo's package-name character set: ASCII letters,
// digits, '-', and '_', non-empty.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return fmt.Errorf("%w: %q contains character %q outside [A-Za-z0-9_-]", ErrInvalidName, name, r)
		}
	}
	return nil
}

// Prefix returns the directory portion of a crate's index path, per
// Cargo's sparse-index convention:
//
//	length 1        -> "1"
//	length 2        -> "2"
//	length 3        -> "3/<first char, lowercase>"
//	length >= 4     -> "<first two, lowercase>/<next two, lowercase>"
//
// Lowercasing applies only to this prefix; the index filename itself keeps
// the name's original case.
func Prefix(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	lower := strings.ToLower(name)
	switch {
	case len(lower) == 1:
		return "1", nil
	case len(lower) == 2:
		return "2", nil
	case len(lower) == 3:
		return filepath.Join("3", lower[:1]), nil
	default:
		return filepath.Join(lower[:2], lower[2:4]), nil
	}
}

// IndexPath returns the path, relative to the registry root, of the
// per-crate index file for name.
func IndexPath(name string) (string, error) {
	prefix, err := Prefix(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, name), nil
}

// ArtifactDir returns the path, relative to the registry root, of the
// directory holding name's stored artifacts.
func ArtifactDir(name string) string {
	return filepath.Join(CratesDirName, name)
}

// ArtifactPath returns the path, relative to the registry root, of the
// stored .crate artifact for name at version.
func ArtifactPath(name, version string) string {
	return filepath.Join(ArtifactDir(name), fmt.Sprintf("%s-%s.crate", name, version))
}

// HTMLPath returns the path, relative to the registry root, of the landing page.
func HTMLPath() string {
	return IndexHTMLName
}

// ErrCaseCollision is returned when name's prefix directory already holds
// a differently-cased index file for the same logical name.
var ErrCaseCollision = errors.New("crate name collides, differing only by case, with an existing index file")

// CheckCaseCollision inspects the prefix directory under registryRoot for
// an existing index file that matches name case-insensitively but not
// exactly. Two names lowercase to the same prefix path but must not share
// a case-insensitively-equal filename.
func CheckCaseCollision(registryRoot, name string) error {
	prefix, err := Prefix(name)
	if err != nil {
		return err
	}
	dir := filepath.Join(registryRoot, prefix)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading prefix directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == name {
			continue
		}
		if strings.EqualFold(e.Name(), name) {
			return fmt.Errorf("%w: %q vs existing %q", ErrCaseCollision, name, e.Name())
		}
	}
	return nil
}
