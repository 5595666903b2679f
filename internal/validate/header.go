package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Spans holds the numeric fields of a canonical hunk header
// "@@ -<old_start>,<old_span> +<new_start>,<new_span> @@". Start offsets
// are carried but never validated; only the spans matter structurally.
type Spans struct {
	OldStart int
	OldSpan  int
	NewStart int
	NewSpan  int

	// headerLen is the byte length of the matched header prefix through
	// the closing "@@", so repairs can preserve any trailing section text.
	headerLen int
}

// ErrMalformedHeader is returned when a header does not match the
// canonical shape at all. There are no numeric spans to correct, so this
// condition is unfixable by span repair.
var ErrMalformedHeader = errors.New("malformed hunk header")

// ParseHeader tokenizes a hunk header. Anything after the closing "@@"
// (the optional section heading) is accepted and ignored.
func ParseHeader(header string) (Spans, error) {
	var s Spans
	rest, ok := strings.CutPrefix(header, "@@ -")
	if !ok {
		return Spans{}, fmt.Errorf("%w: missing \"@@ -\" prefix", ErrMalformedHeader)
	}

	var err error
	if s.OldStart, rest, err = cutInt(rest, ','); err != nil {
		return Spans{}, fmt.Errorf("%w: old start: %v", ErrMalformedHeader, err)
	}
	if s.OldSpan, rest, err = cutInt(rest, ' '); err != nil {
		return Spans{}, fmt.Errorf("%w: old span: %v", ErrMalformedHeader, err)
	}
	rest, ok = strings.CutPrefix(rest, "+")
	if !ok {
		return Spans{}, fmt.Errorf("%w: missing \"+\" before new range", ErrMalformedHeader)
	}
	if s.NewStart, rest, err = cutInt(rest, ','); err != nil {
		return Spans{}, fmt.Errorf("%w: new start: %v", ErrMalformedHeader, err)
	}
	if s.NewSpan, rest, err = cutInt(rest, ' '); err != nil {
		return Spans{}, fmt.Errorf("%w: new span: %v", ErrMalformedHeader, err)
	}
	if !strings.HasPrefix(rest, "@@") {
		return Spans{}, fmt.Errorf("%w: missing closing \"@@\"", ErrMalformedHeader)
	}

	s.headerLen = len(header) - len(rest) + len("@@")
	return s, nil
}

// cutInt consumes a run of ASCII digits followed by the separator and
// returns the parsed value plus the remainder after the separator.
func cutInt(s string, sep byte) (int, string, error) {
	i := 0
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return 0, s, errors.New("expected digits")
	}
	if i >= len(s) || s[i] != sep {
		return 0, s, fmt.Errorf("expected %q after digits", string(sep))
	}
	return n, s[i+1:], nil
}
