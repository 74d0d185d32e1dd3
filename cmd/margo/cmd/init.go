package cmd

import (
	"github.com/spf13/cobra"

	"github.com/integer32llc/margo/internal/registryconfig"
)

var (
	initBaseURL      string
	initUseDefaults  bool
	initRegistryName string
)

var initCmd = &cobra.Command{
	Use:   "init DIR",
	Short: "Create a new registry, or validate an existing one, at DIR",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "base URL the registry will be served from (required)")
	initCmd.Flags().BoolVar(&initUseDefaults, "defaults", false, "enable margo's default registry options")
	initCmd.Flags().StringVar(&initRegistryName, "registry-name", "", "suggested [registries] name shown on the landing page")
	initCmd.MarkFlagRequired("base-url")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := args[0]

	defaults := registryconfig.Defaults{
		AutoRegenerateHTML: initUseDefaults,
	}

	name := initRegistryName
	if name == "" {
		name = registryNameFromDir(dir)
	}

	return engine.Init(dir, initBaseURL, name, defaults)
}
