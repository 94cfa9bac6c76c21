package unitserr

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Error is the engine's single error type. It carries enough context to
// render a one-line message, and — for Kind == Parse — a source offset
// suitable for caret placement under the offending character.
type Error struct {
	Kind    Kind
	Message string
	Source  string // the expression or database line being parsed, if any
	Offset  int    // byte offset into Source; -1 if not applicable
	Name    string // offending unit/prefix/function name, if any
	File    string // database file, if any
	Line    int    // database line number, if any
	cause   error
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// Wrap annotates cause with a Kind, preserving it for errors.Unwrap/Cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1, cause: cause}
}

// WithOffset returns a copy of e carrying source text and a byte offset,
// used by the parser to report PARSE errors with caret placement.
func (e *Error) WithOffset(source string, offset int) *Error {
	c := *e
	c.Source = source
	c.Offset = offset
	return &c
}

// WithLocation returns a copy of e tagged with a database file/line.
func (e *Error) WithLocation(file string, line int) *Error {
	c := *e
	c.File = file
	c.Line = line
	return &c
}

// WithName returns a copy of e carrying the offending name (UnknownUnit).
func (e *Error) WithName(name string) *Error {
	c := *e
	c.Name = name
	return &c
}

func (e *Error) Error() string {
	return e.Format(false)
}

// Unwrap supports errors.Is/errors.As against a wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Cause mirrors github.com/pkg/errors' Causer interface so callers already
// using pkgerrors.Cause() to unwrap error chains work against engine errors
// without special-casing them.
func (e *Error) Cause() error {
	if e.cause != nil {
		return pkgerrors.Cause(e.cause)
	}
	return nil
}

// Format renders a one-line message, plus — for errors carrying a source
// offset — a source line and a caret pointing at the offset.
func (e *Error) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s: ", e.File)
		if e.Line > 0 {
			fmt.Fprintf(&sb, "line %d: ", e.Line)
		}
	}

	if e.Source != "" && e.Offset >= 0 {
		sb.WriteString(e.Source)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", e.caretColumn()))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteByte('^')
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteByte('\n')
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// caretColumn clamps Offset into Source's bounds so a caret is always
// printable even when the offset lands exactly at EOF.
func (e *Error) caretColumn() int {
	if e.Offset < 0 {
		return 0
	}
	if e.Offset > len(e.Source) {
		return len(e.Source)
	}
	return e.Offset
}

// Is reports whether err is an *Error of the given kind, looking through
// wrapped causes the way errors.Is does.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.cause
	}
	return false
}
