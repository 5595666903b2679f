package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/worksonmyai/patchdoctor/internal/plan"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "Show the repair-method catalogue",
	Long: `Methods lists every named repair remedy that plan events can reference,
with its applicability, safety tier and strategy. Only span-header fixes
are applied automatically; everything else is a hint for a human or a
higher-level tool.`,
	RunE: runMethods,
}

func runMethods(_ *cobra.Command, _ []string) error {
	md := methodsMarkdown(plan.Methods())

	if isTTY(os.Stdout) {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Print(out)
				return nil
			}
		}
	}

	fmt.Print(md)
	return nil
}

// methodsMarkdown renders the catalogue as a markdown document.
func methodsMarkdown(methods []plan.Method) string {
	var b strings.Builder
	b.WriteString("# Repair methods\n\n")
	for _, m := range methods {
		fmt.Fprintf(&b, "## %s\n\n", m.RepairCode)
		fmt.Fprintf(&b, "%s\n\n", m.Description)
		fmt.Fprintf(&b, "- Applies to: %s\n", strings.Join(m.AppliesToEventCodes, ", "))
		fmt.Fprintf(&b, "- Safety: %s\n", m.Safety)
		fmt.Fprintf(&b, "- Approximation allowed: %s\n", yesNo(m.ApproximationAllowed))
		fmt.Fprintf(&b, "- Strategy: %s\n\n", m.Strategy)
		fmt.Fprintf(&b, "> %s\n\n", m.Notes)
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// isTTY reports whether f is attached to a terminal.
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
