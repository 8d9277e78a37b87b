package core

import (
	"errors"
	"fmt"
)

// Error taxonomy of the ledger. Callers match with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("expense not found")
	ErrOutOfRange  = errors.New("ordinal out of range")
	ErrPersistence = errors.New("persistence error")
)

// ValidationError reports a malformed value at the boundary. It never
// corresponds to a state change.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError reports an I/O failure on the durable table. The
// previously persisted state is left intact.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// NotFound wraps ErrNotFound with the missing id.
func NotFound(id ID) error {
	return fmt.Errorf("expense %s: %w", id, ErrNotFound)
}
