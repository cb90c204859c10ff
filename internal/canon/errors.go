package canon

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode categorizes canonicalization failures.
type ErrorCode string

const (
	// ErrCodeInvalidTerm indicates a term in a position RDF forbids, or a
	// malformed term.
	ErrCodeInvalidTerm ErrorCode = "INVALID_TERM"

	// ErrCodeAlgorithmNotSupported indicates an unknown algorithm or digest,
	// or a combination the algorithm does not define.
	ErrCodeAlgorithmNotSupported ErrorCode = "ALGORITHM_NOT_SUPPORTED"

	// ErrCodeTimeout indicates the context deadline passed or the context was
	// cancelled mid-run.
	ErrCodeTimeout ErrorCode = "CANONICALIZATION_TIMEOUT"

	// ErrCodeDegreeLimitExceeded indicates a recursion depth or deep
	// iteration bound was hit.
	ErrCodeDegreeLimitExceeded ErrorCode = "DEGREE_LIMIT_EXCEEDED"

	// ErrCodeInternal indicates a broken invariant inside the engine.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error is returned by every failing canonicalization run.
// No partial output accompanies an Error.
type Error struct {
	Code    ErrorCode
	Message string

	// BlankNode is the input identifier involved, when there is one.
	BlankNode string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.BlankNode != "" {
		msg += fmt.Sprintf(" (blank node _:%s)", e.BlankNode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsInvalidTerm reports whether err is an INVALID_TERM failure.
func IsInvalidTerm(err error) bool { return CodeOf(err) == ErrCodeInvalidTerm }

// IsAlgorithmNotSupported reports whether err is an ALGORITHM_NOT_SUPPORTED failure.
func IsAlgorithmNotSupported(err error) bool { return CodeOf(err) == ErrCodeAlgorithmNotSupported }

// IsTimeout reports whether err is a CANONICALIZATION_TIMEOUT failure.
func IsTimeout(err error) bool { return CodeOf(err) == ErrCodeTimeout }

// IsDegreeLimitExceeded reports whether err is a DEGREE_LIMIT_EXCEEDED failure.
func IsDegreeLimitExceeded(err error) bool { return CodeOf(err) == ErrCodeDegreeLimitExceeded }

func invalidTermError(cause error) *Error {
	return &Error{Code: ErrCodeInvalidTerm, Message: "dataset contains an invalid term", Cause: cause}
}

func unsupportedError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeAlgorithmNotSupported, Message: fmt.Sprintf(format, args...)}
}

func timeoutError(cause error) *Error {
	msg := "deadline exceeded"
	if errors.Is(cause, context.Canceled) {
		msg = "cancelled"
	}
	return &Error{Code: ErrCodeTimeout, Message: msg, Cause: cause}
}

func internalError(id, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...), BlankNode: id}
}
