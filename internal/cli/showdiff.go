package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// diff line colors, 256-color codes.
const (
	colorGreen = 42
	colorRed   = 196
	colorCyan  = 117
)

// printRepairDiff prints a unified diff of what a repair pass changed,
// colored per line kind.
func printRepairDiff(w io.Writer, inputLabel, outputLabel, before, after string) {
	if before == after {
		fmt.Fprintln(w, dim("no textual changes"))
		return
	}

	unified := udiff.Unified(inputLabel, outputLabel, before, after)
	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, fg(colorGreen, line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, fg(colorRed, line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(w, fg(colorCyan, line))
		default:
			fmt.Fprintln(w, dim(line))
		}
	}
}
