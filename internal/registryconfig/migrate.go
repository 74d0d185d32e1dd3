package registryconfig

import "fmt"

// migrateFunc reads a document at one schema version and returns the
// document at the next. Modeled as an ordered chain of pure functions per
// Design Notes §9, so version handling never scatters into branches
// elsewhere in the store.
type migrateFunc func(map[string]any) (map[string]any, error)

// migrations maps "version found on disk" -> "function bringing it to
// version+1". Schema 0 denotes a pre-history document (no schema_version
// key at all), which original_source's margo-config.toml predates.
var migrations = map[int]migrateFunc{
	0: migrateV0toV1,
}

// migrateV0toV1 introduces the schema_version field itself and the
// optional registry_name field used by the HTML renderer's "Getting
// started" stanza; neither changes the meaning of any existing key.
func migrateV0toV1(doc map[string]any) (map[string]any, error) {
	doc["schema_version"] = 1
	return doc, nil
}

// migrate folds the applicable suffix of the migration chain starting
// from doc's stored schema_version (treated as 0 if absent) up to
// CurrentSchemaVersion. It fails fatally if doc declares a schema newer
// than this build understands.
func migrate(doc map[string]any) (map[string]any, error) {
	version := asInt(doc["schema_version"])

	if version > CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: found %d, understand up to %d", ErrUnknownSchema, version, CurrentSchemaVersion)
	}

	for version < CurrentSchemaVersion {
		step, ok := migrations[version]
		if !ok {
			return nil, fmt.Errorf("%w: no migration registered from schema %d", ErrUnknownSchema, version)
		}
		next, err := step(doc)
		if err != nil {
			return nil, fmt.Errorf("migrating config from schema %d: %w", version, err)
		}
		doc = next
		version = asInt(doc["schema_version"])
	}

	return doc, nil
}
