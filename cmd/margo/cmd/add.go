package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addRegistryDir string

var addCmd = &cobra.Command{
	Use:   "add FILE...",
	Short: "Add one or more .crate files to the registry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addRegistryDir, "registry", "", "path to the registry (required)")
	addCmd.MarkFlagRequired("registry")
}

func runAdd(cmd *cobra.Command, args []string) error {
	report, err := engine.Add(addRegistryDir, args)
	if err != nil {
		return err
	}

	for _, outcome := range report.Outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "add %s: %v\n", outcome.Path, outcome.Err)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", outcome.Name, outcome.Version)
		}
	}

	if report.Failed() {
		return fmt.Errorf("one or more inputs failed to be added")
	}
	return nil
}
