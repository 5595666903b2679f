package cli

import (
	"github.com/spf13/cobra"
)

var (
	scanValidate bool
	scanPlanOut  string
)

var scanCmd = &cobra.Command{
	Use:   "scan <patch>",
	Short: "Analyse a patch without modifying it",
	Long: `Scan parses and validates a patch, reporting every structural problem
as plan events, and never mutates the input. With --validate the original
text is also checked with git apply --check.

Examples:
  patchdoctor scan broken.patch
  patchdoctor scan broken.patch --validate --plan-out plan.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanValidate, "validate", false, "Run git apply --check on the input")
	scanCmd.Flags().StringVar(&scanPlanOut, "plan-out", "", "Path to write the JSON action plan")
}

func runScan(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	setup, err := setupRun(inputPath, scanValidate, cmd.Flags().Changed("validate"), 0)
	if err != nil {
		return err
	}

	logPlanStart(setup.log, "Starting scan-only patch analysis", inputPath, "")
	res := setup.eng.Scan(cmd.Context(), setup.input)

	if err := finishPlan(res, inputPath, "", scanPlanOut, setup.log); err != nil {
		return err
	}

	printSummary(res, "", scanPlanOut)
	return nil
}
