package patch

import (
	"strings"

	"github.com/worksonmyai/patchdoctor/internal/event"
)

const phaseParse = "parse"

// Parse builds a Document from cleaned lines in a single forward pass.
// A file marker starts a new FileDiff and closes any open hunk; a hunk
// marker starts a new Hunk under the current file. Lines seen before any
// file marker are orphans: they cannot be attached to anything, so they
// are logged and dropped. Parse never fails.
func Parse(lines []string, log *event.Log) *Document {
	doc := &Document{}
	var currentFile *FileDiff
	var currentHunk *Hunk

	for i, line := range lines {
		lineno := i + 1

		if strings.HasPrefix(line, FileMarker) {
			currentFile = &FileDiff{Header: line}
			doc.Files = append(doc.Files, currentFile)
			currentHunk = nil
			log.Append("PARSE_FILE_START", phaseParse, "Detected new file diff section", event.Data{
				"line_number":         lineno,
				"diff_header_preview": log.Preview(line),
			})
			continue
		}

		if currentFile == nil {
			log.Append("PARSE_ORPHAN_LINE", phaseParse, "Line before any diff section (ignored)", event.Data{
				"line_number":  lineno,
				"text_preview": log.Preview(line),
			})
			continue
		}

		if strings.HasPrefix(line, HunkMarker) {
			currentHunk = &Hunk{Header: line}
			currentFile.Hunks = append(currentFile.Hunks, currentHunk)
			log.Append("PARSE_HUNK_HEADER", phaseParse, "Detected hunk header", event.Data{
				"line_number":    lineno,
				"header_preview": log.Preview(line),
			})
			continue
		}

		if currentHunk != nil {
			currentHunk.Body = append(currentHunk.Body, line)
			log.Append("PARSE_HUNK_BODY_LINE", phaseParse, "Recorded hunk body line", event.Data{
				"line_number":  lineno,
				"text_preview": log.Preview(line),
			})
		} else {
			currentFile.Headers = append(currentFile.Headers, line)
			log.Append("PARSE_FILE_HEADER_LINE", phaseParse, "Recorded file header line", event.Data{
				"line_number":  lineno,
				"text_preview": log.Preview(line),
			})
		}
	}

	log.Append("PARSE_SUMMARY", phaseParse, "Finished parsing patch", event.Data{
		"file_count": len(doc.Files),
	})
	return doc
}
