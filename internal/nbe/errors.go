package nbe

import "fmt"

// ErrorKind tags an evaluation-stage fault. Every kind here indicates the
// validator or elaborator handed the evaluator a malformed term — these
// are never expected against validated code, and a caller that sees one
// has a bug upstream, not a user-facing type error (see check.TypeError
// for those).
type ErrorKind string

const (
	ErrIndexOutOfRange  ErrorKind = "index_out_of_range"
	ErrUnknownPrimitive ErrorKind = "unknown_primitive"
	ErrFieldNotFound    ErrorKind = "field_not_found"
	ErrNotAFunction     ErrorKind = "not_a_function"
	ErrNotARecord       ErrorKind = "not_a_record"
	ErrNotALiteral      ErrorKind = "not_a_literal"
	ErrMalformedReducer ErrorKind = "malformed_reducer_result"
)

// Error is an internal-consistency fault raised by the evaluator, closure
// application, or readback. It is always a programmer error: a bug in the
// validator or elaborator that handed malformed input to an already-stuck
// pipeline stage.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
