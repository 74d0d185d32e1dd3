package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrefix(t *testing.T) {
	cases := map[string]string{
		"a":      "1",
		"bb":     "2",
		"ccc":    filepath.Join("3", "c"),
		"serde":  filepath.Join("se", "rd"),
		"Serde":  filepath.Join("se", "rd"),
	}
	for name, want := range cases {
		got, err := Prefix(name)
		if err != nil {
			t.Fatalf("Prefix(%q) error: %v", name, err)
		}
		if got != want {
			t.Errorf("Prefix(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName(""); err == nil {
		t.Error("expected error for empty name")
	}
	if err := ValidateName("has space"); err == nil {
		t.Error("expected error for name with a space")
	}
	if err := ValidateName("valid-name_1"); err != nil {
		t.Errorf("unexpected error for valid name: %v", err)
	}
}

func TestIndexPathPreservesCase(t *testing.T) {
	path, err := IndexPath("Serde")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "Serde" {
		t.Errorf("IndexPath(%q) = %q, want basename to preserve case", "Serde", path)
	}
}

func TestArtifactPath(t *testing.T) {
	got := ArtifactPath("serde", "1.0.0")
	want := filepath.Join("crates", "serde", "serde-1.0.0.crate")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}
}

func TestCheckCaseCollision(t *testing.T) {
	root := t.TempDir()
	prefix, _ := Prefix("serde")
	dir := filepath.Join(root, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "serde"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CheckCaseCollision(root, "Serde"); err == nil {
		t.Error("expected a case-collision error for Serde vs existing serde")
	}
	if err := CheckCaseCollision(root, "serde"); err != nil {
		t.Errorf("re-checking the identical name should not collide: %v", err)
	}
}
