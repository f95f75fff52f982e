package diag

import (
	"fmt"
	"strings"
)

// Severity categorizes a diagnostic. The numeric values match the engine's
// wire encoding.
type Severity uint8

const (
	SeverityError   Severity = 0
	SeverityWarning Severity = 1
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// Diagnostic is one compile-time issue reported by the engine.
type Diagnostic struct {
	// File is the source file the issue was found in. Empty when the engine
	// could not attribute the issue to a file (e.g. driver-level failures).
	File string

	// Line and Column are 1-based. Zero means unknown.
	Line   int
	Column int

	Message  string
	Severity Severity
}

// String renders the diagnostic as file:line:column: message.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
}

// List is an ordered sequence of diagnostics, in the order the engine
// reported them.
type List []Diagnostic

// HasErrors reports whether the list contains at least one error-severity
// diagnostic.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (l List) Errors() List {
	var out List
	for _, d := range l {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Summary renders the whole list as one newline-joined string, one
// file:line:column: message entry per diagnostic.
func (l List) Summary() string {
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}
