package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worksonmyai/patchdoctor/internal/engine"
	"github.com/worksonmyai/patchdoctor/internal/event"
	"github.com/worksonmyai/patchdoctor/internal/tui"
)

var (
	iterateValidate bool
	iteratePlanOut  string
	iterateMaxIters int
	iterateShowDiff bool
	iterateTUI      bool
)

var iterateCmd = &cobra.Command{
	Use:   "iterate <patch> <output>",
	Short: "Run the iterative repair loop until the patch converges",
	Long: `Iterate repeatedly cleans, parses, repairs and re-renders the patch,
feeding each round's output back in as the next round's input. The loop
stops when a round changes nothing, when git apply --check accepts the
result (--validate), or when the round cap is reached. The last rendered
text is written to the output path in every case.

Examples:
  patchdoctor iterate broken.patch fixed.patch --validate
  patchdoctor iterate broken.patch fixed.patch --max-iters 10 --tui`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runIterate,
}

func init() {
	iterateCmd.Flags().BoolVar(&iterateValidate, "validate", false, "Run git apply --check each round")
	iterateCmd.Flags().StringVar(&iteratePlanOut, "plan-out", "", "Path to write the JSON action plan")
	iterateCmd.Flags().IntVar(&iterateMaxIters, "max-iters", 0, "Maximum repair rounds (0 = configured default)")
	iterateCmd.Flags().BoolVar(&iterateShowDiff, "show-diff", false, "Print a diff of what the repairs changed")
	iterateCmd.Flags().BoolVar(&iterateTUI, "tui", false, "Show a live view while iterating")
}

func runIterate(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("output path is required for iterate")
	}
	inputPath, outputPath := args[0], args[1]

	setup, err := setupRun(inputPath, iterateValidate, cmd.Flags().Changed("validate"), iterateMaxIters)
	if err != nil {
		return err
	}

	logPlanStart(setup.log, "Starting iterative repair loop", inputPath, outputPath)

	var res engine.Result
	if iterateTUI {
		events := make(chan event.Event, 256)
		setup.log.SetHandler(func(ev event.Event) { events <- ev })
		done := make(chan engine.Result, 1)
		go func() {
			done <- setup.eng.Iterate(cmd.Context(), setup.input)
			close(events)
		}()
		res, err = tui.Run(inputPath, events, done)
		if err != nil {
			return fmt.Errorf("run live view: %w", err)
		}
	} else {
		res = setup.eng.Iterate(cmd.Context(), setup.input)
	}

	if err := writeOutput(outputPath, res.Output); err != nil {
		return err
	}
	if err := finishPlan(res, inputPath, outputPath, iteratePlanOut, setup.log); err != nil {
		return err
	}

	printSummary(res, outputPath, iteratePlanOut)
	if iterateShowDiff {
		printRepairDiff(cmd.OutOrStdout(), inputPath, outputPath, setup.input, res.Output)
	}
	return nil
}
