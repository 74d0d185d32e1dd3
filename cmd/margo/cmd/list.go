package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listRegistryDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every published (name, version, yanked) tuple in the registry",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listRegistryDir, "registry", "", "path to the registry (required)")
	listCmd.MarkFlagRequired("registry")
}

func runList(cmd *cobra.Command, args []string) error {
	listings, err := engine.List(listRegistryDir)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	defer w.Flush()
	for _, l := range listings {
		status := ""
		if l.Yanked {
			status = "yanked"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Version, status)
	}
	return nil
}
