package index

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func rec(name, vers string) Record {
	return Record{
		Name:     name,
		Vers:     vers,
		Deps:     []Dependency{},
		Cksum:    "abc123",
		Features: map[string][]string{},
		Yanked:   false,
		V:        2,
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if records != nil {
		t.Errorf("Load() on missing file = %v, want nil", records)
	}
}

func TestInsertKeepsSemverOrder(t *testing.T) {
	var records []Record
	var err error
	for _, v := range []string{"2.0.0", "3.0.0", "1.0.0"} {
		records, err = Insert(records, rec("awesome", v))
		if err != nil {
			t.Fatalf("Insert(%s) error = %v", v, err)
		}
	}

	want := []string{"1.0.0", "2.0.0", "3.0.0"}
	for i, r := range records {
		if r.Vers != want[i] {
			t.Fatalf("records[%d].Vers = %q, want %q (order: %v)", i, r.Vers, want[i], versions(records))
		}
	}
}

func TestInsertRejectsDuplicate(t *testing.T) {
	records, err := Insert(nil, rec("awesome", "1.0.0"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Insert(records, rec("awesome", "1.0.0")); err == nil {
		t.Error("expected ErrDuplicateVersion on re-insert")
	}
}

func TestMutateUnknownVersion(t *testing.T) {
	records, _ := Insert(nil, rec("awesome", "1.0.0"))
	if _, err := Mutate(records, "9.9.9", func(r *Record) { r.Yanked = true }); err == nil {
		t.Error("expected ErrUnknownVersion")
	}
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "awesome")

	records, _ := Insert(nil, rec("awesome", "1.0.0"))
	records, _ = Insert(records, rec("awesome", "2.0.0"))

	if err := Write(path, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d records, want 2", len(loaded))
	}
	if loaded[0].Vers != "1.0.0" || loaded[1].Vers != "2.0.0" {
		t.Errorf("Load() order = %v", versions(loaded))
	}
}

func TestUnknownFieldsPreservedOnRoundTrip(t *testing.T) {
	line := `{"name":"awesome","vers":"1.0.0","deps":[],"cksum":"abc","features":{},"yanked":false,"v":2,"from_the_future":"keep me"}`

	var r Record
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		t.Fatal(err)
	}
	if r.Extra["from_the_future"] == nil {
		t.Fatal("expected unknown field to be preserved in Extra")
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `"from_the_future":"keep me"`) {
		t.Errorf("round-tripped JSON lost the unknown field: %s", out)
	}
}

func versions(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Vers
	}
	return out
}
