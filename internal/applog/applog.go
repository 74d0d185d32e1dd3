// Package applog constructs the logrus logger shared by the margo command tree.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing structured output to stderr at the given level.
// An unrecognized level falls back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// WithRegistry returns an entry carrying the registry path as a structured field.
func WithRegistry(log *logrus.Logger, registryDir string) *logrus.Entry {
	return log.WithField("registry", registryDir)
}
