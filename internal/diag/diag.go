// Package diag provides the diagnostics log shared by the whole conversion
// pipeline. The log accumulates non-fatal warning and error messages; it is
// the sole error-reporting channel during canonicalization and model
// building and has no failure mode of its own.
//
// The central operation is Assert, which records a message when a condition
// does not hold and returns the condition unchanged, enabling guard idioms:
//
//	if !log.Assert(name != nil, diag.SeverityError, "contributor requires a name") {
//	    return nil
//	}
package diag

import (
	"fmt"
	"strings"
)

// Severity selects which sequence a failed assertion is recorded in.
type Severity int

const (
	// SeverityWarning records the message as a warning.
	SeverityWarning Severity = iota
	// SeverityError records the message as an error.
	SeverityError
)

// Log is an append-only accumulator of warnings and errors. One Log is
// created per conversion and never shared across invocations.
type Log struct {
	warnings []string
	errors   []string
}

// New creates an empty diagnostics log.
func New() *Log {
	return &Log{}
}

// Assert records msg at the given severity when cond is false and returns
// cond unchanged. Callers decide whether a failed assertion aborts the
// current field by branching on the return value.
func (l *Log) Assert(cond bool, sev Severity, msg string) bool {
	if cond {
		return true
	}
	switch sev {
	case SeverityError:
		l.errors = append(l.errors, msg)
	default:
		l.warnings = append(l.warnings, msg)
	}
	return false
}

// Warnf appends a formatted warning unconditionally.
func (l *Log) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

// Errorf appends a formatted error unconditionally.
func (l *Log) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// Warnings returns the recorded warnings in insertion order.
func (l *Log) Warnings() []string {
	return l.warnings
}

// Errors returns the recorded errors in insertion order.
func (l *Log) Errors() []string {
	return l.errors
}

// HasErrors reports whether any error-severity message was recorded.
func (l *Log) HasErrors() bool {
	return len(l.errors) > 0
}

// Empty reports whether the log holds no messages at all.
func (l *Log) Empty() bool {
	return len(l.warnings) == 0 && len(l.errors) == 0
}

// WarningReport renders the warnings as a newline-joined string.
func (l *Log) WarningReport() string {
	return strings.Join(l.warnings, "\n")
}

// ErrorReport renders the errors as a newline-joined string.
func (l *Log) ErrorReport() string {
	return strings.Join(l.errors, "\n")
}
