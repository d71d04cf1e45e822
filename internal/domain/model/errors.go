package model

import (
	"errors"
	"strings"
)

// Sentinel error kinds. Typed errors below match them via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

// Violation names one broken input rule.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (v Violation) String() string { return v.Field + " " + v.Rule }

// ValidationError lists every rule a submission broke.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ErrValidation as the kind of this error.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StorageError wraps an I/O failure from the record store.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err unless it is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return ErrStorage.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage as the kind of this error.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
