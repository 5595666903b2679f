// Package cli implements the command-line interface for patchdoctor.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "patchdoctor",
	Short: "Structural scanner and repair engine for unified-diff patches",
	Long: `Patchdoctor parses a unified-diff patch, checks every hunk header against
the lines the hunk actually contains, and either reports the damage or
rewrites headers to match. The iterative mode repeats repair passes,
using git apply --check as a stopping signal, until the patch converges.

Every run can emit a JSON action plan: the full event log, the repair
method catalogue, and a result summary for downstream tooling.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(iterateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(methodsCmd)
}
