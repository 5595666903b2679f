package patch

import (
	"testing"

	"github.com/worksonmyai/patchdoctor/internal/event"
)

func findEvent(log *event.Log, code string) *event.Event {
	for _, ev := range log.Events() {
		if ev.Code == code {
			return &ev
		}
	}
	return nil
}

func TestCleanStripsPreamble(t *testing.T) {
	raw := "Some explanation from an email\nmore text\ndiff --git a/f b/f\n--- a/f\n"
	log := event.NewLog()

	lines := Clean(raw, log)

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0] != "diff --git a/f b/f\n" {
		t.Errorf("lines[0] = %q, want the diff marker line", lines[0])
	}

	ev := findEvent(log, "PREAMBLE_STRIPPED")
	if ev == nil {
		t.Fatal("no PREAMBLE_STRIPPED event")
	}
	if ev.Data["removed_lines"] != 2 {
		t.Errorf("removed_lines = %v, want 2", ev.Data["removed_lines"])
	}
}

func TestCleanKeepsTextWithoutMarker(t *testing.T) {
	log := event.NewLog()

	lines := Clean("hello\nworld\n", log)

	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if findEvent(log, "PREAMBLE_NONE") == nil {
		t.Error("no PREAMBLE_NONE event")
	}
}

func TestCleanTrimsTrailingWhitespace(t *testing.T) {
	raw := "diff --git a/f b/f  \t\n"
	log := event.NewLog()

	lines := Clean(raw, log)

	if lines[0] != "diff --git a/f b/f\n" {
		t.Errorf("lines[0] = %q, want trimmed line", lines[0])
	}
	ev := findEvent(log, "WHITESPACE_TRIMMED")
	if ev == nil {
		t.Fatal("no WHITESPACE_TRIMMED event")
	}
	preview, _ := ev.Data["original_preview"].(string)
	if preview != "diff --git a/f b/f  \t"+`\n` {
		t.Errorf("original_preview = %q, want escaped original line", preview)
	}
}

func TestCleanDropsTrailingBlankAdditions(t *testing.T) {
	raw := "diff --git a/f b/f\n@@ -1,1 +1,2 @@\n ctx\n+real\n+\n+\n"
	log := event.NewLog()

	lines := Clean(raw, log)

	if lines[len(lines)-1] != "+real\n" {
		t.Errorf("last line = %q, want %q", lines[len(lines)-1], "+real\n")
	}
	ev := findEvent(log, "EOF_PLUS_BLANK_DROPPED")
	if ev == nil {
		t.Fatal("no EOF_PLUS_BLANK_DROPPED event")
	}
	if ev.Data["dropped_lines"] != 2 {
		t.Errorf("dropped_lines = %v, want 2", ev.Data["dropped_lines"])
	}
}

func TestCleanNeverDropsTrailingContext(t *testing.T) {
	raw := "diff --git a/f b/f\n@@ -1,1 +1,1 @@\n ctx\n"
	log := event.NewLog()

	lines := Clean(raw, log)

	if lines[len(lines)-1] != " ctx\n" {
		t.Errorf("last line = %q, want %q", lines[len(lines)-1], " ctx\n")
	}
}

func TestCleanEmptyInput(t *testing.T) {
	log := event.NewLog()

	lines := Clean("", log)

	if len(lines) != 0 {
		t.Errorf("len(lines) = %d, want 0", len(lines))
	}
	if findEvent(log, "BASIC_CLEAN_END") == nil {
		t.Error("no BASIC_CLEAN_END event")
	}
}
