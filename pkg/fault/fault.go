package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies pipeline failures so the HTTP layer can map them to a
// status code without string matching.
type Kind string

const (
	InvalidInput         Kind = "invalid_input"
	UpstreamFetchFailure Kind = "upstream_fetch_failure"
	ExtractionEmpty      Kind = "extraction_empty"
	SynthesisUnavailable Kind = "synthesis_unavailable"
	MalformedModelOutput Kind = "malformed_model_output"
	ContractViolation    Kind = "contract_violation"
	Timeout              Kind = "timeout"
	Internal             Kind = "internal"
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Msg + ": " + e.Cause.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a fault with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// KindOf returns the kind of err, or Internal for untyped errors.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// HTTPStatus maps a failure to client-vs-server fault. An unusable upload
// (bad input, or a PDF with no text layer) is the client's to fix, so both
// classify as 400; everything else is 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput, ExtractionEmpty:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
