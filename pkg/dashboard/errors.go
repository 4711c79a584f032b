package dashboard

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	// KindTransport marks requests that could not be sent or answered:
	// unreachable backend, refused connection, timeout, truncated body.
	KindTransport ErrorKind = "transport"
	// KindDecode marks responses that arrived but could not be decoded into
	// the expected shape: invalid JSON, wrong type, missing required field.
	KindDecode ErrorKind = "decode"
)

// Error is the failure type returned by every Client operation. The
// underlying error's description is preserved so callers can surface it
// verbatim; Kind lets them branch without parsing text.
type Error struct {
	Op   string // operation that failed, e.g. "get agents"
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsDecode reports whether err is a decode failure.
func IsDecode(err error) bool { return hasKind(err, KindDecode) }

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
