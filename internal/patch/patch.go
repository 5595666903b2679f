// Package patch defines the structural model of a unified-diff patch and
// the cleaning/parsing stages that build it from raw text.
package patch

import "strings"

// FileMarker begins a per-file section of a patch.
const FileMarker = "diff --git "

// HunkMarker begins a hunk header line.
const HunkMarker = "@@ "

// NoNewlineMarkerText is the literal marker git emits when a file does
// not end with a newline. It is transparent to span arithmetic.
const NoNewlineMarkerText = `\ No newline at end of file`

// Document is an ordered sequence of file diffs. Order is significant
// and preserved on render. A Document is rebuilt from scratch on every
// pipeline pass; only the serialized text crosses iteration boundaries.
type Document struct {
	Files []*FileDiff
}

// FileDiff is one "diff --git" section: its marker line, the auxiliary
// header lines before the first hunk (mode/index/rename lines, passed
// through verbatim), and its hunks.
type FileDiff struct {
	Header  string
	Headers []string
	Hunks   []*Hunk
}

// Hunk is one "@@" header line plus its body lines, stored verbatim with
// line terminators.
type Hunk struct {
	Header string
	Body   []string
}

// LineKind classifies a hunk body line.
type LineKind int

const (
	// Context is an unchanged line (prefix space), counted in both spans.
	Context LineKind = iota
	// Removed is an old-side line (prefix '-').
	Removed
	// Added is a new-side line (prefix '+' with content beyond the '+').
	Added
	// NoNewlineMarker is the literal no-newline marker, ignored for counting.
	NoNewlineMarker
	// Unexpected is anything else; its presence signals corruption.
	Unexpected
)

// Classify determines the kind of a single body line. A lone "+" (a blank
// addition) deliberately falls through to Unexpected: the cleaner trims
// those only at end of patch, and anywhere else they corrupt the hunk.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, " "):
		return Context
	case strings.HasPrefix(line, "-"):
		return Removed
	case strings.HasPrefix(line, "+") && strings.TrimSpace(line) != "+":
		return Added
	case strings.HasPrefix(line, NoNewlineMarkerText):
		return NoNewlineMarker
	default:
		return Unexpected
	}
}

// Counts holds the per-kind body line totals for one hunk.
type Counts struct {
	Context       int
	Removed       int
	Added         int
	HasUnexpected bool
}

// ExpectedOldSpan is the old-side span implied by the body.
func (c Counts) ExpectedOldSpan() int { return c.Context + c.Removed }

// ExpectedNewSpan is the new-side span implied by the body.
func (c Counts) ExpectedNewSpan() int { return c.Context + c.Added }

// CountBody tallies the body lines of a hunk by kind.
func CountBody(h *Hunk) Counts {
	var c Counts
	for _, line := range h.Body {
		switch Classify(line) {
		case Context:
			c.Context++
		case Removed:
			c.Removed++
		case Added:
			c.Added++
		case NoNewlineMarker:
			// transparent to span arithmetic
		case Unexpected:
			c.HasUnexpected = true
		}
	}
	return c
}
