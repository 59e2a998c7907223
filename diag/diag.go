// Package diag implements the diagnostic log shared by every pipeline
// stage: lexer, parser and semantic analyzer all append to one ordered
// Log, which the driver concatenates across stages and sub-programs.
package diag

import (
	"fmt"
	"strings"
)

// Level is the severity of a diagnostic entry.
type Level int

const (
	Info Level = iota
	Debug
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ansiColor returns the escape code used when rendering with color enabled.
func (l Level) ansiColor() string {
	switch l {
	case Info:
		return "\x1b[36m" // cyan
	case Debug:
		return "\x1b[90m" // gray
	case Warning:
		return "\x1b[33m" // yellow
	case Error:
		return "\x1b[31m" // red
	default:
		return ""
	}
}

const ansiReset = "\x1b[0m"

// Entry is a single diagnostic log line.
type Entry struct {
	Level   Level
	Message string
	Line    int
	Column  int
	HasPos  bool
}

func (e Entry) String() string {
	if e.HasPos {
		return fmt.Sprintf("[%s] %s (line %d, col %d)", e.Level, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("[%s] %s", e.Level, e.Message)
}

// Log is an append-only, insertion-ordered sequence of diagnostic entries.
// It is owned by its producing stage until that stage completes, at which
// point ownership transfers to the driver (spec.md §5).
type Log struct {
	Entries []Entry
}

func (l *Log) add(level Level, msg string, line, col int, hasPos bool) {
	l.Entries = append(l.Entries, Entry{
		Level:   level,
		Message: msg,
		Line:    line,
		Column:  col,
		HasPos:  hasPos,
	})
}

// Info appends an INFO entry with no position (e.g. stage completion summaries).
func (l *Log) Info(format string, args ...any) {
	l.add(Info, fmt.Sprintf(format, args...), 0, 0, false)
}

// Debug appends a DEBUG entry with no position.
func (l *Log) Debug(format string, args ...any) {
	l.add(Debug, fmt.Sprintf(format, args...), 0, 0, false)
}

// WarnAt appends a WARNING entry carrying a source position.
func (l *Log) WarnAt(line, col int, format string, args ...any) {
	l.add(Warning, fmt.Sprintf(format, args...), line, col, true)
}

// ErrorAt appends an ERROR entry carrying a source position.
func (l *Log) ErrorAt(line, col int, format string, args ...any) {
	l.add(Error, fmt.Sprintf(format, args...), line, col, true)
}

// HasErrors reports whether any ERROR-level entry was recorded.
func (l *Log) HasErrors() bool {
	for _, e := range l.Entries {
		if e.Level == Error {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of ERROR-level entries.
func (l *Log) ErrorCount() int {
	n := 0
	for _, e := range l.Entries {
		if e.Level == Error {
			n++
		}
	}
	return n
}

// Append concatenates another log's entries onto this one, preserving order.
// This is how the driver collates per-stage logs into one sink (spec.md §5).
func (l *Log) Append(other *Log) {
	if other == nil {
		return
	}
	l.Entries = append(l.Entries, other.Entries...)
}

// Render formats the log as newline-separated lines, one per entry,
// optionally carrying an ANSI color hint per severity (spec.md §6 item 1).
func (l *Log) Render(color bool) string {
	var sb strings.Builder
	for _, e := range l.Entries {
		if color {
			sb.WriteString(e.Level.ansiColor())
			sb.WriteString(e.String())
			sb.WriteString(ansiReset)
		} else {
			sb.WriteString(e.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
