package cmd

import "path/filepath"

// registryNameFromDir derives a default [registries] suggested name from
// a registry directory path, used when --registry-name is not given.
func registryNameFromDir(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == "/" || base == "" {
		return "margo"
	}
	return base
}
