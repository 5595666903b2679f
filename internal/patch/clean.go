package patch

import (
	"strings"
	"unicode"

	"github.com/worksonmyai/patchdoctor/internal/event"
)

const phaseClean = "basic_clean"

// Clean normalizes raw patch text into a line list ready for parsing:
// the preamble before the first file marker is discarded, trailing
// whitespace (including the terminator) is stripped and a single "\n"
// re-appended per line, and trailing blank-addition lines ("+" with
// nothing else) are removed from the end of the patch. Clean never
// fails; the worst case is an empty line list.
func Clean(raw string, log *event.Log) []string {
	lines := splitLines(raw)
	log.Append("BASIC_CLEAN_START", phaseClean, "Starting basic_clean", event.Data{
		"line_count": len(lines),
	})

	preambleIndex := -1
	for i, line := range lines {
		if strings.HasPrefix(line, FileMarker) {
			preambleIndex = i
			break
		}
	}

	if preambleIndex > 0 {
		log.Append("PREAMBLE_STRIPPED", phaseClean, "Stripped preamble before first diff --git", event.Data{
			"removed_lines": preambleIndex,
		})
		lines = lines[preambleIndex:]
	} else {
		log.Append("PREAMBLE_NONE", phaseClean, "No preamble detected before first diff --git", nil)
	}

	cleaned := make([]string, 0, len(lines))
	trimmed := 0
	for i, line := range lines {
		stripped := strings.TrimRightFunc(line, unicode.IsSpace)
		if stripped != line {
			trimmed++
			log.Append("WHITESPACE_TRIMMED", phaseClean, "Trimmed trailing whitespace on line", event.Data{
				"line_number":      i + 1,
				"original_preview": log.Preview(line),
			})
		}
		cleaned = append(cleaned, stripped+"\n")
	}
	lines = cleaned

	log.Append("WHITESPACE_TRIM_SUMMARY", phaseClean, "Trailing whitespace trimming summary", event.Data{
		"trimmed_lines": trimmed,
	})

	dropped := 0
	for len(lines) > 0 && isBlankAddition(lines[len(lines)-1]) {
		dropped++
		lines = lines[:len(lines)-1]
	}
	log.Append("EOF_PLUS_BLANK_DROPPED", phaseClean, "Dropped trailing '+ blank' lines at EOF", event.Data{
		"dropped_lines": dropped,
	})

	log.Append("BASIC_CLEAN_END", phaseClean, "Finished basic_clean", event.Data{
		"line_count": len(lines),
	})
	return lines
}

// isBlankAddition reports whether a line is a spurious blank addition: a
// '+' prefix with nothing but whitespace after it.
func isBlankAddition(line string) bool {
	return strings.HasPrefix(line, "+") && strings.TrimSpace(line) == "+"
}

// splitLines splits text into lines, keeping the "\n" terminator on each
// line. The final line is kept even without a terminator.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
