package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	repairValidate bool
	repairPlanOut  string
	repairShowDiff bool
)

var repairCmd = &cobra.Command{
	Use:   "repair <patch> <output>",
	Short: "Apply a single conservative repair pass",
	Long: `Repair runs one clean→parse→validate→render cycle with span fixes
enabled and writes the repaired patch to the output path. Hunks that
cannot be repaired are dropped; files left without hunks are dropped
entirely.

Examples:
  patchdoctor repair broken.patch fixed.patch
  patchdoctor repair broken.patch fixed.patch --validate --show-diff`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().BoolVar(&repairValidate, "validate", false, "Run git apply --check on the repaired output")
	repairCmd.Flags().StringVar(&repairPlanOut, "plan-out", "", "Path to write the JSON action plan")
	repairCmd.Flags().BoolVar(&repairShowDiff, "show-diff", false, "Print a diff of what the repair changed")
}

func runRepair(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("output path is required for repair")
	}
	inputPath, outputPath := args[0], args[1]

	setup, err := setupRun(inputPath, repairValidate, cmd.Flags().Changed("validate"), 0)
	if err != nil {
		return err
	}

	logPlanStart(setup.log, "Starting single-pass repair", inputPath, outputPath)
	res := setup.eng.RepairOnce(cmd.Context(), setup.input)

	if err := writeOutput(outputPath, res.Output); err != nil {
		return err
	}
	if err := finishPlan(res, inputPath, outputPath, repairPlanOut, setup.log); err != nil {
		return err
	}

	printSummary(res, outputPath, repairPlanOut)
	if repairShowDiff {
		printRepairDiff(cmd.OutOrStdout(), inputPath, outputPath, setup.input, res.Output)
	}
	return nil
}
