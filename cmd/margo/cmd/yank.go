package cmd

import (
	"github.com/spf13/cobra"
)

var (
	yankRegistryDir   string
	yankVersion       string
	unyankRegistryDir string
	unyankVersion     string
)

var yankCmd = &cobra.Command{
	Use:   "yank NAME",
	Short: "Mark a published version as yanked",
	Args:  cobra.ExactArgs(1),
	RunE:  runYank,
}

var unyankCmd = &cobra.Command{
	Use:   "unyank NAME",
	Short: "Clear the yanked flag on a published version",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnyank,
}

func init() {
	yankCmd.Flags().StringVar(&yankRegistryDir, "registry", "", "path to the registry (required)")
	yankCmd.Flags().StringVar(&yankVersion, "version", "", "version to yank (required)")
	yankCmd.MarkFlagRequired("registry")
	yankCmd.MarkFlagRequired("version")

	unyankCmd.Flags().StringVar(&unyankRegistryDir, "registry", "", "path to the registry (required)")
	unyankCmd.Flags().StringVar(&unyankVersion, "version", "", "version to unyank (required)")
	unyankCmd.MarkFlagRequired("registry")
	unyankCmd.MarkFlagRequired("version")
}

func runYank(cmd *cobra.Command, args []string) error {
	return engine.Yank(yankRegistryDir, args[0], yankVersion)
}

func runUnyank(cmd *cobra.Command, args []string) error {
	return engine.Unyank(unyankRegistryDir, args[0], unyankVersion)
}
