package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrQuit is returned by HandleKey when the quit command fires.
	ErrQuit = errors.New("quit requested")

	// ErrNoFilePath indicates a save of a session that has no file.
	ErrNoFilePath = errors.New("no file path")

	// ErrReadOnly indicates a write to a read-only session.
	ErrReadOnly = errors.New("read-only")

	// ErrUnsavedChanges indicates quit was refused because of unsaved edits.
	ErrUnsavedChanges = errors.New("unsaved changes")
)

// OperationError is a failed session operation on a target, usually a file.
type OperationError struct {
	Op      string // "open", "save", "undo", ...
	Target  string // file path or command name
	Context string
	Err     error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets extra context. It is safe on a nil receiver.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
