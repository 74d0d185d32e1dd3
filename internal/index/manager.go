package index

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/integer32llc/margo/internal/semverx"
)

// ErrDuplicateVersion is returned by Insert when a record for the same
// version already exists.
var ErrDuplicateVersion = errors.New("a record for this version already exists")

// ErrUnknownVersion is returned by Mutate when no record matches the
// requested version.
var ErrUnknownVersion = errors.New("no record exists for this version")

// Load parses an index file into its records. A missing file is not an
// error: it represents a crate with no published versions yet.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening index file %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid index record: %w", path, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}
	return records, nil
}

// Insert returns records with new inserted in SemVer-ascending order.
// It fails if a record with the same Vers already exists.
func Insert(records []Record, rec Record) ([]Record, error) {
	pos := 0
	for _, existing := range records {
		if existing.Vers == rec.Vers {
			return nil, fmt.Errorf("%s %s: %w", rec.Name, rec.Vers, ErrDuplicateVersion)
		}
		if semverx.Less(existing.Vers, rec.Vers) {
			pos++
		}
	}

	out := make([]Record, 0, len(records)+1)
	out = append(out, records[:pos]...)
	out = append(out, rec)
	out = append(out, records[pos:]...)
	return out, nil
}

// Mutate applies f to the record matching version, returning the updated
// slice. f is invoked with a pointer into a copy of the slice.
func Mutate(records []Record, version string, f func(*Record)) ([]Record, error) {
	for i := range records {
		if records[i].Vers == version {
			f(&records[i])
			return records, nil
		}
	}
	return nil, fmt.Errorf("version %s: %w", version, ErrUnknownVersion)
}

// Find returns a pointer to the record matching version, or nil.
func Find(records []Record, version string) *Record {
	for i := range records {
		if records[i].Vers == version {
			return &records[i]
		}
	}
	return nil
}

// Write serializes records as newline-delimited JSON and atomically
// replaces path. Missing parent directories are created.
func Write(path string, records []Record) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s %s: %w", rec.Name, rec.Vers, err)
		}
		buf.Write(line)
		if i != len(records)-1 {
			buf.WriteByte('\n')
		}
	}

	return atomicWrite(dir, path, buf.Bytes())
}

// atomicWrite writes data to a temp file inside dir, fsyncs it, then
// renames it over path. Grounded on the create-temp/write/rename idiom
// used by the configuration store's own save path.
func atomicWrite(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".margo-index-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
