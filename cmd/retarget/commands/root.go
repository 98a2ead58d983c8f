// Package commands provides the CLI commands for the retarget tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retarget",
	Short: "Type-universe inspection and retargeting queries",
	Long: `retarget works with type-universe manifests: declarative YAML files
describing the modules and types that make up a universe.

This tool provides:
  - Inspection of a universe manifest (retarget inspect)
  - Cross-universe type resolution queries (retarget resolve)
  - Fetching shared manifest repositories (retarget fetch)

The retargeting engine itself is a library; this tool exists to examine
universes and debug resolution without writing code.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for \"retarget\"\nRun 'retarget --help' for usage", args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}
