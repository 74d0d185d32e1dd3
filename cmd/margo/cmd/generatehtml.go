package cmd

import (
	"github.com/spf13/cobra"
)

var generateHTMLRegistryDir string

var generateHTMLCmd = &cobra.Command{
	Use:   "generate-html",
	Short: "Regenerate the registry's landing page",
	Args:  cobra.NoArgs,
	RunE:  runGenerateHTML,
}

func init() {
	generateHTMLCmd.Flags().StringVar(&generateHTMLRegistryDir, "registry", "", "path to the registry (required)")
	generateHTMLCmd.MarkFlagRequired("registry")
}

func runGenerateHTML(cmd *cobra.Command, args []string) error {
	return engine.GenerateHTML(generateHTMLRegistryDir)
}
