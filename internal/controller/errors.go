package controller

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when an operation is already in flight.
var ErrBusy = errors.New("controller: operation already in flight")

// ValidationError is raised before dispatch; no request is sent.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// ClipboardError wraps a failed clipboard write.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard write failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}
