// Package cmd wires the margo CLI surface: init, add, yank, unyank, list,
// and generate-html, per spec.md §6.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/integer32llc/margo/internal/applog"
	"github.com/integer32llc/margo/internal/ops"
)

var (
	logLevel string
	log      *logrus.Logger
	engine   *ops.Engine
)

var rootCmd = &cobra.Command{
	Use:   "margo",
	Short: "Build and maintain a Cargo-compatible package registry of static files",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = applog.New(logLevel)
		engine = ops.New(log)
	},
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (panic|fatal|error|warn|info|debug|trace)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(yankCmd)
	rootCmd.AddCommand(unyankCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(generateHTMLCmd)
}

// Execute runs the margo CLI, returning an error if the invoked command failed.
func Execute() error {
	return rootCmd.Execute()
}
