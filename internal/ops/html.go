package ops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/integer32llc/margo/internal/htmlrender"
	"github.com/integer32llc/margo/internal/layout"
	"github.com/integer32llc/margo/internal/registryconfig"
)

// GenerateHTML regenerates the registry's landing page.
func (e *Engine) GenerateHTML(registryDir string) error {
	cfg, warnings, err := registryconfig.Load(registryDir)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		e.Log.Warn(w)
	}

	listings, err := e.List(registryDir)
	if err != nil {
		return err
	}

	page, err := htmlrender.Render(htmlrender.Page{
		BaseURL:      cfg.BaseURL,
		RegistryName: cfg.RegistryName,
		Crates:       GroupByName(listings),
	})
	if err != nil {
		return fmt.Errorf("rendering landing page: %w", err)
	}

	dst := filepath.Join(registryDir, layout.HTMLPath())
	if err := writeFileAtomic(dst, []byte(page)); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}

	e.Log.WithField("path", dst).Info("regenerated landing page")
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".margo-html-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
