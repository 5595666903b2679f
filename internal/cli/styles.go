package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/worksonmyai/patchdoctor/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// printSummary renders the human-facing result block after a run.
func printSummary(res engine.Result, outputPath, planOut string) {
	fmt.Println(titleStyle.Render("patchdoctor " + string(res.Mode)))

	switch res.Mode {
	case engine.ModeRepair:
		printField("Valid files", fmt.Sprintf("%d", res.ValidFiles))
	case engine.ModeIterative:
		printField("Rounds", fmt.Sprintf("%d", res.Iterations))
		printField("Outcome", res.Status.String())
	}

	if res.GitValidation != "" {
		style := okStyle
		if res.GitValidation != "ok" {
			style = badStyle
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("Git check:"), style.Render(res.GitValidation))
	}
	if outputPath != "" {
		printField("Output", outputPath)
	}
	if planOut != "" {
		printField("Plan", planOut)
	}
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
