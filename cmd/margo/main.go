// Command margo builds and maintains a Cargo-compatible package registry
// as a tree of static files on local disk.
package main

import (
	"os"

	"github.com/integer32llc/margo/cmd/margo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
