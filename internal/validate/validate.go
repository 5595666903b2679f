// Package validate checks each hunk's declared spans against its body
// and, when repairs are permitted, rewrites span headers in place.
package validate

import (
	"fmt"

	"github.com/worksonmyai/patchdoctor/internal/event"
	"github.com/worksonmyai/patchdoctor/internal/patch"
)

const phaseValidate = "validate"

// Outcome is the per-hunk validation result. It is derived fresh on
// every pass and never persisted on the hunk.
type Outcome int

const (
	// Valid means header spans match the body exactly and no unexpected
	// lines are present.
	Valid Outcome = iota
	// RepairedValid means the span header was rewritten to match the body.
	// This is the only outcome that can retain a hunk containing
	// unexpected lines: best-effort salvage, applied only when a span fix
	// was actually performed.
	RepairedValid
	// MalformedHeader means the header does not match the canonical shape.
	// Always rejected; there are no numeric spans to correct.
	MalformedHeader
	// UnexpectedLineType means an unclassifiable body line blocked
	// retention.
	UnexpectedLineType
	// SpanMismatch means declared spans disagree with the body and no
	// repair was applied.
	SpanMismatch
)

// Retained reports whether a hunk with this outcome stays in the document.
func (o Outcome) Retained() bool {
	return o == Valid || o == RepairedValid
}

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case RepairedValid:
		return "repaired_valid"
	case MalformedHeader:
		return "malformed_header"
	case UnexpectedLineType:
		return "unexpected_line_type"
	case SpanMismatch:
		return "span_mismatch"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Check validates one hunk against its header. With allowRepairs set, a
// span mismatch is fixed by rewriting the header's numeric fields to the
// counted values; nothing else is ever repaired automatically. The file
// header is only used for event context.
func Check(h *patch.Hunk, fileHeader string, allowRepairs bool, log *event.Log) Outcome {
	spans, err := ParseHeader(h.Header)
	if err != nil {
		log.Append("HUNK_INVALID_MALFORMED_HEADER", phaseValidate, "Hunk header is malformed", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"repair_hint":         "REPAIR_RECONSTRUCT_MALFORMED_HEADER or regenerate diff.",
		})
		return MalformedHeader
	}

	counts := patch.CountBody(h)

	if counts.HasUnexpected {
		log.Append("HUNK_INVALID_UNEXPECTED_LINE", phaseValidate, "Unexpected line type in hunk body", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"repair_hint":         "REPAIR_REBUILD_HUNK_FROM_BODY or drop hunk.",
		})
		if !allowRepairs {
			return UnexpectedLineType
		}
	}

	expectedOld := counts.ExpectedOldSpan()
	expectedNew := counts.ExpectedNewSpan()

	if expectedOld == spans.OldSpan && expectedNew == spans.NewSpan && !counts.HasUnexpected {
		log.Append("HUNK_VALID", phaseValidate, "Hunk is structurally valid", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"old_span":            spans.OldSpan,
			"new_span":            spans.NewSpan,
			"context_lines":       counts.Context,
			"removed_lines":       counts.Removed,
			"added_lines":         counts.Added,
		})
		return Valid
	}

	if !allowRepairs {
		if expectedOld != spans.OldSpan {
			log.Append("HUNK_INVALID_OLD_SPAN_MISMATCH", phaseValidate, "Old span mismatch in hunk header", event.Data{
				"file_header_preview": log.Preview(fileHeader),
				"header_preview":      log.Preview(h.Header),
				"expected_old_span":   expectedOld,
				"actual_old_span":     spans.OldSpan,
				"repair_hint":         "REPAIR_FIX_OLD_SPAN_HEADER or REPAIR_APPROXIMATE_HEADER_REWRITE.",
			})
		}
		if expectedNew != spans.NewSpan {
			log.Append("HUNK_INVALID_NEW_SPAN_MISMATCH", phaseValidate, "New span mismatch in hunk header", event.Data{
				"file_header_preview": log.Preview(fileHeader),
				"header_preview":      log.Preview(h.Header),
				"expected_new_span":   expectedNew,
				"actual_new_span":     spans.NewSpan,
				"repair_hint":         "REPAIR_FIX_NEW_SPAN_HEADER or REPAIR_APPROXIMATE_HEADER_REWRITE.",
			})
		}
		return SpanMismatch
	}

	if repairSpans(h, fileHeader, spans, counts, log) {
		log.Append("HUNK_VALID_AFTER_REPAIR", phaseValidate, "Hunk became valid after header span repair", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"old_span":            expectedOld,
			"new_span":            expectedNew,
		})
		return RepairedValid
	}

	// No repair was applied: the spans already matched, so only unexpected
	// lines can have brought us here. The guards below exist for the
	// impossible case where a repair was applied but spans still disagree.
	if expectedOld != spans.OldSpan {
		log.Append("HUNK_INVALID_OLD_SPAN_MISMATCH", phaseValidate, "Old span mismatch in hunk header (repair failed)", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"expected_old_span":   expectedOld,
			"actual_old_span":     spans.OldSpan,
			"repair_hint":         "REPAIR_FIX_OLD_SPAN_HEADER or REPAIR_REGENERATE_DIFF_FOR_FILE.",
		})
	}
	if expectedNew != spans.NewSpan {
		log.Append("HUNK_INVALID_NEW_SPAN_MISMATCH", phaseValidate, "New span mismatch in hunk header (repair failed)", event.Data{
			"file_header_preview": log.Preview(fileHeader),
			"header_preview":      log.Preview(h.Header),
			"expected_new_span":   expectedNew,
			"actual_new_span":     spans.NewSpan,
			"repair_hint":         "REPAIR_FIX_NEW_SPAN_HEADER or REPAIR_REGENERATE_DIFF_FOR_FILE.",
		})
	}
	if counts.HasUnexpected {
		return UnexpectedLineType
	}
	return SpanMismatch
}

// repairSpans rewrites the header's numeric spans to the counted values,
// preserving any section text after the closing "@@". Start offsets are
// reset to 0; nothing downstream depends on them. Returns false when the
// spans already match (no repair needed).
func repairSpans(h *patch.Hunk, fileHeader string, spans Spans, counts patch.Counts, log *event.Log) bool {
	expectedOld := counts.ExpectedOldSpan()
	expectedNew := counts.ExpectedNewSpan()
	if expectedOld == spans.OldSpan && expectedNew == spans.NewSpan {
		return false
	}

	newHeader := fmt.Sprintf("@@ -0,%d +0,%d @@", expectedOld, expectedNew) + h.Header[spans.headerLen:]
	log.Append("HUNK_HEADER_SPAN_REPAIRED", phaseValidate, "Repaired hunk header span values", event.Data{
		"file_header_preview": log.Preview(fileHeader),
		"old_header_preview":  log.Preview(h.Header),
		"new_header_preview":  log.Preview(newHeader),
		"old_span":            spans.OldSpan,
		"new_span":            spans.NewSpan,
		"expected_old_span":   expectedOld,
		"expected_new_span":   expectedNew,
	})
	h.Header = newHeader
	return true
}

// FilterFiles validates every hunk of every file, dropping rejected hunks
// and then any file left with no hunks. The surviving files keep their
// input order.
func FilterFiles(doc *patch.Document, allowRepairs bool, log *event.Log) *patch.Document {
	result := &patch.Document{}

	for _, fd := range doc.Files {
		var validHunks []*patch.Hunk
		for _, h := range fd.Hunks {
			if Check(h, fd.Header, allowRepairs, log).Retained() {
				validHunks = append(validHunks, h)
			}
		}

		if len(validHunks) > 0 {
			fd.Hunks = validHunks
			result.Files = append(result.Files, fd)
		} else {
			log.Append("FILE_DROPPED_NO_VALID_HUNKS", phaseValidate, "Dropping file diff because it has no valid hunks", event.Data{
				"file_header_preview": log.Preview(fd.Header),
				"repair_hint":         "REPAIR_REGENERATE_DIFF_FOR_FILE or REPAIR_REGENERATE_FULL_PATCH.",
			})
		}
	}

	log.Append("FILTER_FILES_SUMMARY", phaseValidate, "Finished validating/repairing hunks and filtering files", event.Data{
		"remaining_files": len(result.Files),
	})
	return result
}
