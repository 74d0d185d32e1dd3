package ops

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/integer32llc/margo/internal/index"
	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/registryconfig"
)

// Yank marks name@version as yanked. Idempotent: yanking an
// already-yanked version is a no-op that logs a warning instead of
// rewriting the index file.
func (e *Engine) Yank(registryDir, name, version string) error {
	return e.setYanked(registryDir, name, version, true)
}

// Unyank clears the yanked flag on name@version. Idempotent in the same
// way as Yank.
func (e *Engine) Unyank(registryDir, name, version string) error {
	return e.setYanked(registryDir, name, version, false)
}

func (e *Engine) setYanked(registryDir, name, version string, yanked bool) error {
	cfg, warnings, err := registryconfig.Load(registryDir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		e.Log.Warn(w)
	}

	indexRel, err := layout.IndexPath(name)
	if err != nil {
		return err
	}
	indexAbs := filepath.Join(registryDir, indexRel)

	records, err := index.Load(indexAbs)
	if err != nil {
		return err
	}
	if records == nil {
		return fmt.Errorf("%s: %w", name, index.ErrUnknownVersion)
	}

	existing := index.Find(records, version)
	if existing == nil {
		return fmt.Errorf("%s %s: %w", name, version, index.ErrUnknownVersion)
	}

	if existing.Yanked == yanked {
		e.Log.WithFields(logrus.Fields{"crate": name, "version": version, "yanked": yanked}).
			Warn("version already in requested yank state, nothing to do")
		return nil
	}

	updated, err := index.Mutate(records, version, func(r *index.Record) {
		r.Yanked = yanked
	})
	if err != nil {
		return err
	}

	if err := index.Write(indexAbs, updated); err != nil {
		return err
	}

	e.Log.WithFields(logrus.Fields{"crate": name, "version": version, "yanked": yanked}).Info("updated yank state")

	if cfg.Defaults.AutoRegenerateHTML {
		if err := e.GenerateHTML(registryDir); err != nil {
			return fmt.Errorf("regenerating HTML after yank: %w", err)
		}
	}
	return nil
}
