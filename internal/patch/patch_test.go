package patch

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"context", " unchanged\n", Context},
		{"removed", "-old\n", Removed},
		{"added", "+new\n", Added},
		{"no newline marker", `\ No newline at end of file` + "\n", NoNewlineMarker},
		{"blank addition is unexpected", "+\n", Unexpected},
		{"bare newline is unexpected", "\n", Unexpected},
		{"garbage is unexpected", "garbage\n", Unexpected},
		{"plus with content is added", "+x\n", Added},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCountBody(t *testing.T) {
	h := &Hunk{
		Header: "@@ -1,2 +1,3 @@\n",
		Body: []string{
			" ctx\n",
			"-gone\n",
			"+one\n",
			"+two\n",
			`\ No newline at end of file` + "\n",
		},
	}

	c := CountBody(h)
	if c.Context != 1 || c.Removed != 1 || c.Added != 2 {
		t.Errorf("CountBody = %+v, want context 1, removed 1, added 2", c)
	}
	if c.HasUnexpected {
		t.Error("HasUnexpected = true, want false")
	}
	if c.ExpectedOldSpan() != 2 || c.ExpectedNewSpan() != 3 {
		t.Errorf("spans = %d/%d, want 2/3", c.ExpectedOldSpan(), c.ExpectedNewSpan())
	}
}

func TestCountBodyUnexpected(t *testing.T) {
	h := &Hunk{Body: []string{" ok\n", "???\n"}}

	c := CountBody(h)
	if !c.HasUnexpected {
		t.Error("HasUnexpected = false, want true")
	}
	if c.Context != 1 {
		t.Errorf("Context = %d, want 1", c.Context)
	}
}
