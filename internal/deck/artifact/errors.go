package artifact

import (
	"errors"
	"fmt"
	"io/fs"
)

type Kind string

const (
	KindDenied    Kind = "persistence_denied"
	KindExhausted Kind = "persistence_exhausted"
	KindIO        Kind = "persistence_io_error"
)

// Error is the only error Persist returns. Op names the failed step
// (mkdir, create_temp, encode, sync, close, rename).
type Error struct {
	Kind  Kind
	Op    string
	Path  string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "persist failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("persist failed (op=%s kind=%s path=%s): %v", e.Op, e.Kind, e.Path, e.Cause)
	}
	return fmt.Sprintf("persist failed (op=%s kind=%s path=%s)", e.Op, e.Kind, e.Path)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Message is a short, user-facing description of the failure kind.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindDenied:
		return "destination is not writable"
	case KindExhausted:
		return "not enough storage space to save the presentation"
	default:
		return "failed to save the presentation"
	}
}

// KindOf extracts the failure kind from err.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Kind, true
	}
	return "", false
}

func classify(op, path string, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrPermission) || isReadOnly(err):
		kind = KindDenied
	case isNoSpace(err):
		kind = KindExhausted
	}
	return &Error{Kind: kind, Op: op, Path: path, Cause: err}
}
