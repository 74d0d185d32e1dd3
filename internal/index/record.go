// Package index manages per-crate index files: newline-delimited JSON
// sequences of Index Records, sorted by ascending SemVer.
package index

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Dependency describes one dependency entry of an Index Record.
type Dependency struct {
	Name            string   `json:"name"`
	Req             string   `json:"req"`
	Features        []string `json:"features"`
	Optional        bool     `json:"optional"`
	DefaultFeatures bool     `json:"default_features"`
	Target          *string  `json:"target,omitempty"`
	Kind            string   `json:"kind"`
	Registry        *string  `json:"registry,omitempty"`
	Package         *string  `json:"package,omitempty"`
}

// Record is one published version of one crate. Field order mirrors the
// canonical JSON layout spec.md §4.C requires: name, vers, deps, cksum,
// features, yanked, links, v, features2, with rust_version (a Cargo
// sparse-index field original_source's manifest adaptation also reads)
// appended as an additive, omitted-when-absent field.
//
// Unknown fields encountered on load are preserved verbatim in Extra and
// re-emitted on write, so a Record survives a round trip through a future
// schema it doesn't understand.
type Record struct {
	Name        string              `json:"name"`
	Vers        string              `json:"vers"`
	Deps        []Dependency        `json:"deps"`
	Cksum       string              `json:"cksum"`
	Features    map[string][]string `json:"features"`
	Yanked      bool                `json:"yanked"`
	Links       string              `json:"links,omitempty"`
	V           int                 `json:"v"`
	Features2   map[string][]string `json:"features2,omitempty"`
	RustVersion string              `json:"rust_version,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownRecordFields = map[string]bool{
	"name": true, "vers": true, "deps": true, "cksum": true,
	"features": true, "yanked": true, "links": true, "v": true,
	"features2": true, "rust_version": true,
}

// UnmarshalJSON decodes known fields normally and stashes any remaining
// top-level keys into Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Record(a)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)
	for k, v := range raw {
		if !knownRecordFields[k] {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		r.Extra = extra
	} else {
		r.Extra = nil
	}
	return nil
}

// MarshalJSON emits the known fields in their fixed order, followed by any
// preserved unknown fields sorted by key for determinism.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	base, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(base[1 : len(base)-1])
	for _, k := range keys {
		buf.WriteByte(',')
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(r.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
