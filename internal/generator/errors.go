package generator

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when a failure carries no usable message.
const FallbackMessage = "Failed to generate post"

// Kind classifies generation failures.
type Kind string

const (
	// KindTransport covers network failures and non-success HTTP statuses.
	KindTransport Kind = "transport"
	// KindApplication covers success statuses whose body reports an error.
	KindApplication Kind = "application"
)

// Error is returned by every Client implementation.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = FallbackMessage
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the text to show the user: the provider-supplied message
// when present, otherwise FallbackMessage.
func Message(err error) string {
	var genErr *Error
	if errors.As(err, &genErr) && genErr.Message != "" {
		return genErr.Message
	}
	return FallbackMessage
}

// IsKind reports whether err is a generation error of the given kind.
func IsKind(err error, kind Kind) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == kind
}

func transportError(status int, message string, err error) *Error {
	return &Error{Kind: KindTransport, Status: status, Message: message, Err: err}
}

func applicationError(status int, message string, err error) *Error {
	return &Error{Kind: KindApplication, Status: status, Message: message, Err: err}
}
