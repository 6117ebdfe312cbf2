// Package svgerr implements the error model described in spec.md §7: a
// closed set of error kinds, each carrying a human-readable message and
// an optional source range, usable with errors.Is/errors.As.
package svgerr

import "fmt"

// Kind enumerates the error kinds from §7.
type Kind int

const (
	// ParseSyntax indicates the XML parser failed.
	ParseSyntax Kind = iota
	// PathSyntax indicates the path-data parser failed on a specific attribute.
	PathSyntax
	// CssSyntax indicates an inline or embedded CSS construct failed to parse.
	CssSyntax
	// Selector indicates a user-supplied CSS selector failed to compile.
	Selector
	// Precheck indicates a pass refused to run because the document uses
	// an unsupported feature.
	Precheck
	// Configuration indicates invalid or out-of-range user configuration.
	Configuration
	// Cancelled indicates traversal aborted via the cancellation flag.
	Cancelled
	// Io indicates an underlying file or stream failure; driver-visible only.
	Io
)

func (k Kind) String() string {
	switch k {
	case ParseSyntax:
		return "ParseSyntax"
	case PathSyntax:
		return "PathSyntax"
	case CssSyntax:
		return "CssSyntax"
	case Selector:
		return "Selector"
	case Precheck:
		return "Precheck"
	case Configuration:
		return "Configuration"
	case Cancelled:
		return "Cancelled"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// SourceRange is a byte-offset range within the original input, when the
// parser that produced the erroring node retained ranges (the strict
// parser only — see dom.ParseStrict).
type SourceRange struct {
	Start int
	End   int
}

// Error is the single concrete error type used across the module. Kind
// selects which of §7's categories it belongs to; callers distinguish
// kinds with errors.As and a type switch on Kind, not with sentinel
// errors per kind, since all eight share the same shape.
type Error struct {
	Kind    Kind
	Message string
	Range   *SourceRange
	Wrapped error
}

func (e *Error) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("%s: %s (at byte %d-%d)", e.Kind, e.Message, e.Range.Start, e.Range.End)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to a wrapped cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// New constructs an Error with no source range.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// At constructs an Error with a source range.
func At(kind Kind, message string, start, end int) *Error {
	return &Error{Kind: kind, Message: message, Range: &SourceRange{Start: start, End: end}}
}

// Wrap constructs an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), Wrapped: cause}
}

// Is reports whether target is an *Error of the same Kind, so
// errors.Is(err, svgerr.New(svgerr.Precheck, "")) matches any Precheck
// error whatever its message; a bare Kind value is not an error and
// cannot be a target.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// List aggregates multiple errors, as produced by a pass's element hooks
// and combined by the visitor framework's error aggregation (§4.E).
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("%d errors, first: %s", len(l), l[0].Error())
}

// Warning is a non-fatal diagnostic attached to a node and surfaced to
// the driver after the pipeline completes (§7).
type Warning struct {
	Message string
	Range   *SourceRange
}
