package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/worksonmyai/patchdoctor/internal/plan"
)

func TestMethodsMarkdownListsEveryMethod(t *testing.T) {
	methods := plan.Methods()
	md := methodsMarkdown(methods)

	assert.True(t, strings.HasPrefix(md, "# Repair methods\n"))
	for _, m := range methods {
		assert.Contains(t, md, "## "+m.RepairCode+"\n")
		assert.Contains(t, md, m.Description)
	}
}

func TestRunRepairRequiresOutputPath(t *testing.T) {
	err := runRepair(repairCmd, []string{"only-input.patch"})
	assert.EqualError(t, err, "output path is required for repair")
}

func TestRunIterateRequiresOutputPath(t *testing.T) {
	err := runIterate(iterateCmd, []string{"only-input.patch"})
	assert.EqualError(t, err, "output path is required for iterate")
}

func TestPrintRepairDiffNoChanges(t *testing.T) {
	var b strings.Builder
	printRepairDiff(&b, "a.patch", "b.patch", "same\n", "same\n")
	assert.Contains(t, b.String(), "no textual changes")
}

func TestPrintRepairDiffShowsChangedLines(t *testing.T) {
	var b strings.Builder
	printRepairDiff(&b, "a.patch", "b.patch", "old line\n", "new line\n")

	out := b.String()
	assert.Contains(t, out, "old line")
	assert.Contains(t, out, "new line")
	assert.Contains(t, out, "a.patch")
	assert.Contains(t, out, "b.patch")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
