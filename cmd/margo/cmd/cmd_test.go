package cmd

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func makeCrate(t *testing.T, dir, name, version string) string {
	t.Helper()
	manifest := "[package]\nname = \"" + name + "\"\nversion = \"" + version + "\"\n"

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	stem := name + "-" + version
	hdr := &tar.Header{Name: stem + "/Cargo.toml", Mode: 0o644, Size: int64(len(manifest))}
	if err := tw.WriteHeader(hdr); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write([]byte(manifest)); err != nil {
		t.Fatal(err)
	}
	tw.Close()
	gz.Close()

	path := filepath.Join(dir, stem+".crate")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestInitAddListEndToEnd(t *testing.T) {
	registryDir := filepath.Join(t.TempDir(), "registry")
	crateDir := t.TempDir()

	if err := execute(t, "init", registryDir, "--base-url", "https://example.com/reg"); err != nil {
		t.Fatalf("init error = %v", err)
	}

	cratePath := makeCrate(t, crateDir, "alpha", "1.0.0")
	if err := execute(t, "add", "--registry", registryDir, cratePath); err != nil {
		t.Fatalf("add error = %v", err)
	}

	if err := execute(t, "list", "--registry", registryDir); err != nil {
		t.Fatalf("list error = %v", err)
	}
}

func TestInitRefusesNonEmptyNonRegistryDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "init", dir, "--base-url", "https://example.com/reg"); err == nil {
		t.Error("expected init to refuse a non-empty, non-registry directory")
	}
}

func TestYankUnknownCrate(t *testing.T) {
	registryDir := t.TempDir()
	if err := execute(t, "init", registryDir, "--base-url", "https://example.com/reg"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "yank", "nope", "--registry", registryDir, "--version", "1.0.0"); err == nil {
		t.Error("expected yank of an unknown crate to fail")
	}
}
