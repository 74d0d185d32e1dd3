// Package registryconfig implements the Configuration Store: loading,
// schema-migrating, and persisting a registry's own margo.toml, and
// keeping Cargo's config.json in sync with the registry's base URL.
package registryconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/integer32llc/margo/internal/layout"
)

// CurrentSchemaVersion is the schema version this build writes.
const CurrentSchemaVersion = 1

// OptAutoRegenerateHTML, when set, tells the Operations Engine to
// regenerate the HTML landing page after every mutating command.
const OptAutoRegenerateHTML = "auto-regenerate-html"

// ErrUnknownSchema is fatal: the store refuses to operate on a registry
// whose schema_version is newer than this build understands.
var ErrUnknownSchema = errors.New("registry config schema version is newer than this build of margo understands")

// ErrNotARegistry indicates a directory lacks a margo.toml and so is not
// (yet) a Margo registry.
var ErrNotARegistry = errors.New("directory is not a margo registry")

// Defaults is the registry's enumerated set of recognized boolean
// options. Unknown keys found on disk are preserved (and warned about by
// the caller) rather than discarded, per spec.md §4.D / §9.
type Defaults struct {
	AutoRegenerateHTML bool
	Unknown            map[string]bool
}

// Config is margo's own registry configuration document (margo.toml).
type Config struct {
	SchemaVersion int
	BaseURL       string
	// RegistryName suggests a name for the [registries] stanza on the
	// generated landing page (a supplement carried from
	// original_source's suggested_registry_name). It has no effect on
	// any on-disk path spec.md treats as bit-exact.
	RegistryName string
	Defaults     Defaults
}

// cargoConfigDoc is Cargo's registry-discovery document, config.json.
type cargoConfigDoc struct {
	DL  string `json:"dl"`
	API string `json:"api,omitempty"`
}

// Path returns the absolute path to dir's margo.toml.
func Path(dir string) string {
	return filepath.Join(dir, layout.MargoConfigFileName)
}

// Exists reports whether dir already holds a margo.toml.
func Exists(dir string) bool {
	_, err := os.Stat(Path(dir))
	return err == nil
}

// New builds the initial Config for `margo init`.
func New(baseURL, registryName string, defaults Defaults) Config {
	return Config{
		SchemaVersion: CurrentSchemaVersion,
		BaseURL:       baseURL,
		RegistryName:  registryName,
		Defaults:      defaults,
	}
}

// Load reads and, if necessary, migrates dir's margo.toml. A migrated
// document is re-persisted before being returned (Design Notes §9: "on
// load ... fold the applicable suffix of the chain ... on save, emit the
// current schema version"). Load also self-heals config.json whenever its
// dl template disagrees with the loaded base URL (Testable Properties
// invariant 5).
func Load(dir string) (Config, []string, error) {
	path := Path(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil, fmt.Errorf("%s: %w", dir, ErrNotARegistry)
		}
		return Config{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Config{}, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	origVersion := asInt(doc["schema_version"])

	migrated, err := migrate(doc)
	if err != nil {
		return Config{}, nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg, warnings := decode(migrated)

	if origVersion != CurrentSchemaVersion {
		if err := Save(dir, cfg); err != nil {
			return Config{}, warnings, fmt.Errorf("persisting migrated config: %w", err)
		}
	}

	if err := syncCargoConfig(dir, cfg.BaseURL); err != nil {
		return Config{}, warnings, err
	}

	return cfg, warnings, nil
}

func decode(doc map[string]any) (Config, []string) {
	cfg := Config{
		SchemaVersion: asInt(doc["schema_version"]),
		BaseURL:       asString(doc["base_url"]),
		RegistryName:  asString(doc["registry_name"]),
	}

	defaultsTable, _ := doc["defaults"].(map[string]any)
	cfg.Defaults.Unknown = make(map[string]bool)
	var warnings []string
	for k, v := range defaultsTable {
		b, _ := v.(bool)
		switch k {
		case OptAutoRegenerateHTML:
			cfg.Defaults.AutoRegenerateHTML = b
		default:
			cfg.Defaults.Unknown[k] = b
			warnings = append(warnings, fmt.Sprintf("unrecognized defaults option %q preserved as-is", k))
		}
	}
	sort.Strings(warnings)
	return cfg, warnings
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// Save atomically writes cfg as dir's margo.toml, always emitting
// CurrentSchemaVersion, and resyncs config.json if needed.
func Save(dir string, cfg Config) error {
	cfg.SchemaVersion = CurrentSchemaVersion

	doc := map[string]any{
		"schema_version": cfg.SchemaVersion,
		"base_url":       cfg.BaseURL,
	}
	if cfg.RegistryName != "" {
		doc["registry_name"] = cfg.RegistryName
	}

	defaultsTable := map[string]any{
		OptAutoRegenerateHTML: cfg.Defaults.AutoRegenerateHTML,
	}
	for k, v := range cfg.Defaults.Unknown {
		defaultsTable[k] = v
	}
	doc["defaults"] = defaultsTable

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding margo.toml: %w", err)
	}

	if err := atomicWrite(dir, Path(dir), data); err != nil {
		return err
	}
	return syncCargoConfig(dir, cfg.BaseURL)
}

// syncCargoConfig regenerates config.json whenever its dl template
// disagrees with baseURL (spec.md §4.D, §8 invariant 5).
func syncCargoConfig(dir, baseURL string) error {
	path := filepath.Join(dir, layout.ConfigFileName)
	wantDL := downloadTemplate(baseURL)

	if data, err := os.ReadFile(path); err == nil {
		var existing cargoConfigDoc
		if jsonUnmarshalQuiet(data, &existing) && existing.DL == wantDL {
			return nil
		}
	}

	return WriteCargoConfig(dir, baseURL)
}

// WriteCargoConfig atomically (re)writes Cargo's config.json for baseURL.
func WriteCargoConfig(dir, baseURL string) error {
	doc := cargoConfigDoc{DL: downloadTemplate(baseURL)}
	data, err := jsonMarshalIndent(doc)
	if err != nil {
		return fmt.Errorf("encoding config.json: %w", err)
	}
	return atomicWrite(dir, filepath.Join(dir, layout.ConfigFileName), data)
}

func downloadTemplate(baseURL string) string {
	return baseURL + "/crates/{crate}/{crate}-{version}.crate"
}
