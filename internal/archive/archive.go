// Package archive implements the Crate Archive Reader: opening a .crate
// file (a gzip-compressed tar archive), locating its embedded Cargo.toml,
// and producing an index.Record ready for insertion into a registry.
package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/integer32llc/margo/internal/index"
	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/semverx"
)

// Sentinel errors covering spec.md §4.A's error taxonomy.
var (
	ErrNotGzip          = errors.New("not a gzip stream")
	ErrMalformedArchive = errors.New("malformed archive")
	ErrMissingManifest  = errors.New("archive does not contain a Cargo.toml manifest")
	ErrInvalidManifest  = errors.New("Cargo.toml could not be parsed")
	ErrInvalidVersion   = errors.New("invalid crate version")
)

const indexSchemaVersion = 2

// Read opens the .crate file at path, verifies and extracts its manifest,
// and returns an index.Record populated with the checksum of the whole
// artifact and the manifest's normalized dependencies and features.
func Read(path string) (*index.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	cksum := hex.EncodeToString(sum[:])

	manifestBytes, err := extractManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var raw rawManifest
	if err := toml.Unmarshal(manifestBytes, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidManifest, err)
	}

	if raw.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w: missing [package].name", path, ErrInvalidManifest)
	}
	if err := layout.ValidateName(raw.Package.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !semverx.Valid(raw.Package.Version) {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrInvalidVersion, raw.Package.Version)
	}

	deps, err := normalizeAllDependencies(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidManifest, err)
	}

	features, features2 := splitFeatures(raw.Features)

	return &index.Record{
		Name:        raw.Package.Name,
		Vers:        raw.Package.Version,
		Deps:        deps,
		Cksum:       cksum,
		Features:    features,
		Yanked:      false,
		Links:       raw.Package.Links,
		V:           indexSchemaVersion,
		Features2:   features2,
		RustVersion: raw.Package.RustVersion,
	}, nil
}

// extractManifest decompresses data as gzip, scans the tar entries for the
// embedded Cargo.toml, and returns its raw bytes.
func extractManifest(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotGzip, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)

	stem := ""
	var manifest []byte
	found := false

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
		}

		name := strings.TrimPrefix(hdr.Name, "./")
		top := strings.SplitN(name, "/", 2)[0]
		if top == "" {
			continue
		}
		if stem == "" {
			stem = top
		} else if stem != top {
			return nil, fmt.Errorf("%w: multiple top-level directories (%q and %q)", ErrMalformedArchive, stem, top)
		}

		if name == stem+"/Cargo.toml" {
			buf, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("%w: reading Cargo.toml: %v", ErrMalformedArchive, err)
			}
			manifest = buf
			found = true
		}
	}

	if stem == "" {
		return nil, fmt.Errorf("%w: empty archive", ErrMalformedArchive)
	}
	if !found {
		return nil, ErrMissingManifest
	}
	return manifest, nil
}
