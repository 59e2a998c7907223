package diag_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/alanppc/diag"
)

func TestLog_HasErrorsOnlyTrueAfterError(t *testing.T) {
	var l diag.Log
	if l.HasErrors() {
		t.Error("expected empty log to have no errors")
	}

	l.Info("starting")
	l.Debug("state: %d", 1)
	l.WarnAt(3, 7, "unused label")
	if l.HasErrors() {
		t.Error("expected log with only INFO/DEBUG/WARNING to have no errors")
	}

	l.ErrorAt(5, 10, "unexpected token")
	if !l.HasErrors() {
		t.Error("expected log with an ERROR entry to report HasErrors")
	}
	if l.ErrorCount() != 1 {
		t.Errorf("expected ErrorCount=1, got %d", l.ErrorCount())
	}
}

func TestLog_RenderIncludesPositionWhenPresent(t *testing.T) {
	var l diag.Log
	l.ErrorAt(5, 10, "unexpected token")
	l.Info("stage complete")

	out := l.Render(false)
	if !strings.Contains(out, "line 5, col 10") {
		t.Errorf("expected rendered output to contain position, got: %s", out)
	}
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("expected rendered output to contain [ERROR], got: %s", out)
	}
	if !strings.Contains(out, "[INFO] stage complete") {
		t.Errorf("expected rendered output to contain the INFO line, got: %s", out)
	}
}

func TestLog_RenderWithColorWrapsEntriesInAnsiEscapes(t *testing.T) {
	var l diag.Log
	l.ErrorAt(1, 1, "boom")

	plain := l.Render(false)
	colored := l.Render(true)

	if plain == colored {
		t.Error("expected colored rendering to differ from plain rendering")
	}
	if !strings.Contains(colored, "\x1b[") {
		t.Error("expected colored rendering to contain an ANSI escape sequence")
	}
}

func TestLog_AppendPreservesOrderAndHandlesNil(t *testing.T) {
	var a, b diag.Log
	a.Info("first")
	b.Info("second")

	a.Append(&b)
	if len(a.Entries) != 2 {
		t.Fatalf("expected 2 entries after append, got %d", len(a.Entries))
	}
	if a.Entries[0].Message != "first" || a.Entries[1].Message != "second" {
		t.Errorf("expected append to preserve insertion order, got %+v", a.Entries)
	}

	a.Append(nil)
	if len(a.Entries) != 2 {
		t.Errorf("expected Append(nil) to be a no-op, got %d entries", len(a.Entries))
	}
}

func TestLog_LevelString(t *testing.T) {
	cases := []struct {
		level diag.Level
		want  string
	}{
		{diag.Info, "INFO"},
		{diag.Debug, "DEBUG"},
		{diag.Warning, "WARNING"},
		{diag.Error, "ERROR"},
	}
	for _, c := range cases {
		if got := c.level.String(); got != c.want {
			t.Errorf("Level(%d).String() = %q, want %q", c.level, got, c.want)
		}
	}
}
