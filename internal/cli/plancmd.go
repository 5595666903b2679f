package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	planSummaryOnly bool
	planStripSteps  bool
)

var planCmd = &cobra.Command{
	Use:   "plan <plan.json>",
	Short: "Inspect a previously written action plan",
	Long: `Plan reads a JSON action plan written by scan, repair or iterate and
prints it. --summary extracts just the headline fields; --strip-steps
drops the (often large) event log before printing.

Examples:
  patchdoctor plan plan.json --summary
  patchdoctor plan plan.json --strip-steps`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planSummaryOnly, "summary", false, "Print only the headline fields")
	planCmd.Flags().BoolVar(&planStripSteps, "strip-steps", false, "Omit the steps array from the output")
}

func runPlan(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read plan file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%s is not valid JSON", args[0])
	}

	if planSummaryOnly {
		printPlanSummary(data)
		return nil
	}

	if planStripSteps {
		data, err = sjson.DeleteBytes(data, "steps")
		if err != nil {
			return fmt.Errorf("strip steps: %w", err)
		}
	}

	os.Stdout.Write(pretty.Pretty(data))
	return nil
}

// printPlanSummary extracts the headline fields of a plan document.
func printPlanSummary(data []byte) {
	fmt.Println(titleStyle.Render("plan " + gjson.GetBytes(data, "input_file").String()))
	printField("Mode", gjson.GetBytes(data, "mode").String())
	printField("Version", gjson.GetBytes(data, "plan_version").String())
	printField("Steps", fmt.Sprintf("%d", gjson.GetBytes(data, "steps.#").Int()))

	if v := gjson.GetBytes(data, "summary.valid_files"); v.Exists() && v.Type != gjson.Null {
		printField("Valid files", v.String())
	}
	if v := gjson.GetBytes(data, "summary.iterations_run"); v.Exists() {
		printField("Rounds", v.String())
	}
	if v := gjson.GetBytes(data, "summary.git_validation"); v.Exists() && v.Type != gjson.Null {
		style := okStyle
		if v.String() != "ok" {
			style = badStyle
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("Git check:"), style.Render(v.String()))
	}
	if v := gjson.GetBytes(data, "output_file"); v.Exists() && v.Type != gjson.Null {
		printField("Output", v.String())
	}
}
