package registryconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := New("https://example.com/registry", "my-registry", Defaults{AutoRegenerateHTML: true})

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, warnings, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.BaseURL, cfg.BaseURL)
	}
	if loaded.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", loaded.SchemaVersion, CurrentSchemaVersion)
	}
	if !loaded.Defaults.AutoRegenerateHTML {
		t.Error("expected AutoRegenerateHTML to round-trip true")
	}
}

func TestSaveWritesCargoConfigJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := New("https://example.com/registry", "my-registry", Defaults{})
	if err := Save(dir, cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("reading config.json: %v", err)
	}
	var doc struct {
		DL string `json:"dl"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	want := "https://example.com/registry/crates/{crate}/{crate}-{version}.crate"
	if doc.DL != want {
		t.Errorf("config.json dl = %q, want %q", doc.DL, want)
	}
}

func TestLoadMigratesUnversionedDocument(t *testing.T) {
	dir := t.TempDir()
	legacy := "base_url = \"https://example.com\"\n\n[defaults]\nauto-regenerate-html = true\n"
	if err := os.WriteFile(Path(dir), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d after migration", cfg.SchemaVersion, CurrentSchemaVersion)
	}

	onDisk, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(onDisk) == 0 {
		t.Error("expected migrated config to be persisted")
	}
}

func TestLoadRejectsFutureSchema(t *testing.T) {
	dir := t.TempDir()
	future := "schema_version = 999\nbase_url = \"https://example.com\"\n"
	if err := os.WriteFile(Path(dir), []byte(future), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(dir); err == nil {
		t.Error("expected an error loading a config with a future schema_version")
	}
}

func TestLoadPreservesUnknownDefaultsKeys(t *testing.T) {
	dir := t.TempDir()
	doc := "schema_version = 1\nbase_url = \"https://example.com\"\n\n[defaults]\nauto-regenerate-html = false\nfrom-the-future = true\n"
	if err := os.WriteFile(Path(dir), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, warnings, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning about the unrecognized defaults key")
	}
	if v, ok := cfg.Defaults.Unknown["from-the-future"]; !ok || !v {
		t.Errorf("expected unknown default key to be preserved, got %v", cfg.Defaults.Unknown)
	}

	if err := Save(dir, cfg); err != nil {
		t.Fatal(err)
	}
	reloaded, _, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := reloaded.Defaults.Unknown["from-the-future"]; !ok || !v {
		t.Error("expected unknown default key to survive a save/load round trip")
	}
}

func TestLoadMissingRegistry(t *testing.T) {
	if _, _, err := Load(t.TempDir()); err == nil {
		t.Error("expected ErrNotARegistry for a directory with no margo.toml")
	}
}
