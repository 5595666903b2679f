// Package render serializes a patch document back to text.
package render

import (
	"strings"

	"github.com/worksonmyai/patchdoctor/internal/event"
	"github.com/worksonmyai/patchdoctor/internal/patch"
)

// Render concatenates every retained file's header, auxiliary header
// lines, and hunks in original order. It is pure and never fails; an
// empty document renders to an empty string.
func Render(doc *patch.Document, log *event.Log) string {
	var b strings.Builder
	for _, fd := range doc.Files {
		b.WriteString(fd.Header)
		for _, h := range fd.Headers {
			b.WriteString(h)
		}
		for _, hunk := range fd.Hunks {
			b.WriteString(hunk.Header)
			for _, line := range hunk.Body {
				b.WriteString(line)
			}
		}
	}

	text := b.String()
	log.Append("RENDER_SUMMARY", "render", "Rendered patch text from FileDiffs", event.Data{
		"rendered_lines": lineCount(text),
	})
	return text
}

// lineCount counts lines the way splitting on "\n" does, without
// requiring a trailing terminator.
func lineCount(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
