// Package ops implements the Operations Engine: init, add, yank, unyank,
// list, and generate-html as transactions over the archive, layout,
// index, and registryconfig packages, preserving the invariants spec.md
// §8 requires.
package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/integer32llc/margo/internal/archive"
	"github.com/integer32llc/margo/internal/index"
	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/registryconfig"
)

// Engine executes registry operations, logging each transaction.
type Engine struct {
	Log *logrus.Logger
}

// New returns an Engine that logs through log.
func New(log *logrus.Logger) *Engine {
	return &Engine{Log: log}
}

// Init creates dir as a new registry, or validates it is already one.
// It refuses to touch a non-empty directory that isn't already a Margo
// registry.
func (e *Engine) Init(dir, baseURL, registryName string, defaults registryconfig.Defaults) error {
	entry := e.Log.WithField("registry", dir)

	info, statErr := os.Stat(dir)
	switch {
	case statErr == nil && !info.IsDir():
		return fmt.Errorf("%s: not a directory", dir)
	case statErr != nil && !os.IsNotExist(statErr):
		return fmt.Errorf("stat %s: %w", dir, statErr)
	case statErr == nil:
		empty, err := dirIsEmpty(dir)
		if err != nil {
			return err
		}
		if !empty && !registryconfig.Exists(dir) {
			return fmt.Errorf("%s: directory is non-empty and is not already a margo registry", dir)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	cfg := registryconfig.New(baseURL, registryName, defaults)
	if err := registryconfig.Save(dir, cfg); err != nil {
		return fmt.Errorf("writing registry configuration: %w", err)
	}

	entry.WithField("base_url", baseURL).Info("initialized registry")
	return nil
}

func dirIsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", dir, err)
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if err == nil {
		return false, nil
	}
	return true, nil
}

// AddOutcome records the result of attempting to add one .crate file.
type AddOutcome struct {
	Path    string
	Name    string
	Version string
	Err     error
}

// AddReport aggregates the per-file outcomes of an Add call.
type AddReport struct {
	Outcomes []AddOutcome
}

// Failed reports whether any input file failed to be added.
func (r AddReport) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Add ingests each of cratePaths into the registry at registryDir. Each
// input's outcome is independent: a failure on one file does not prevent
// the rest from being processed (spec.md §4.E, §7).
func (e *Engine) Add(registryDir string, cratePaths []string) (AddReport, error) {
	cfg, warnings, err := registryconfig.Load(registryDir)
	if err != nil {
		return AddReport{}, err
	}
	for _, w := range warnings {
		e.Log.Warn(w)
	}

	report := AddReport{}
	anyInserted := false

	for _, path := range cratePaths {
		outcome := AddOutcome{Path: path}

		rec, err := archive.Read(path)
		if err != nil {
			outcome.Err = err
			e.Log.WithError(err).WithField("path", path).Warn("failed to read crate archive")
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}
		outcome.Name = rec.Name
		outcome.Version = rec.Vers

		if err := e.addOne(registryDir, path, rec); err != nil {
			outcome.Err = err
			e.Log.WithError(err).WithFields(logrus.Fields{"crate": rec.Name, "version": rec.Vers}).Warn("failed to add crate")
		} else {
			anyInserted = true
			e.Log.WithFields(logrus.Fields{"crate": rec.Name, "version": rec.Vers}).Info("added crate")
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if anyInserted && cfg.Defaults.AutoRegenerateHTML {
		if err := e.GenerateHTML(registryDir); err != nil {
			return report, fmt.Errorf("regenerating HTML after add: %w", err)
		}
	}

	return report, nil
}

// addOne performs steps 2-3 of spec.md §4.E's add algorithm for a single
// already-parsed record: copy the artifact, then insert its index record.
func (e *Engine) addOne(registryDir, srcPath string, rec *index.Record) error {
	if err := layout.ValidateName(rec.Name); err != nil {
		return err
	}
	if err := layout.CheckCaseCollision(registryDir, rec.Name); err != nil {
		return err
	}

	artifactRel := layout.ArtifactPath(rec.Name, rec.Vers)
	artifactAbs := filepath.Join(registryDir, artifactRel)
	if _, err := os.Stat(artifactAbs); err == nil {
		return fmt.Errorf("%s %s: artifact already present at %s", rec.Name, rec.Vers, artifactRel)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking artifact path %s: %w", artifactAbs, err)
	}

	if err := copyFile(srcPath, artifactAbs); err != nil {
		return fmt.Errorf("copying artifact to %s: %w", artifactAbs, err)
	}

	indexRel, err := layout.IndexPath(rec.Name)
	if err != nil {
		os.Remove(artifactAbs)
		return err
	}
	indexAbs := filepath.Join(registryDir, indexRel)

	records, err := index.Load(indexAbs)
	if err != nil {
		os.Remove(artifactAbs)
		return err
	}

	updated, err := index.Insert(records, *rec)
	if err != nil {
		os.Remove(artifactAbs)
		return err
	}

	if err := index.Write(indexAbs, updated); err != nil {
		return err
	}

	return nil
}

// copyFile copies src to dst via a temp file in dst's directory, then
// renames it into place, so a reader never observes a partially-written
// artifact (spec.md §5's per-file atomicity guarantee).
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".margo-artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, dst, err)
	}
	return nil
}
