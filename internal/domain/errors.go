package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrPersistence          = errors.New("persistence failed")
	ErrGeneration           = errors.New("recipe generation failed")
	ErrGenerationInProgress = errors.New("a generation is already in progress")
)

// ValidationError rejects a submission before it reaches the repository.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports ErrValidation so callers can use errors.Is.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError is a store read or write failure. It is never fatal: the
// repository keeps its last known good collection.
type PersistenceError struct {
	Op  string // "load", "save", "decode", "encode", "open"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is reports ErrPersistence so callers can use errors.Is.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// GenerationError is any failure of the AI generator: missing key, network,
// non-success status or an unparseable reply.
type GenerationError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is reports ErrGeneration so callers can use errors.Is.
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }
