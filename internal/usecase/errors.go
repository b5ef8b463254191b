package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Recoverable per-pick conditions. They are reported in logs and run
	// summaries, never returned from ProcessWeek.
	ErrUnjoinableGame        = errors.New("game cannot be joined to a provider result")
	ErrUnparseableSpreadPick = errors.New("spread pick does not match <team> cover(s) <line>")
)

// FetchError means the results provider could not be read. It aborts the
// run before anything is written.
type FetchError struct {
	Season     int
	SeasonType int
	Week       int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch week results season=%d type=%d week=%d", e.Season, e.SeasonType, e.Week)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" status=%d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDependencyUnavailable}
	}
	return []error{ErrDependencyUnavailable, e.Err}
}

// PersistenceError is a failed write or lookup of a single row.
type PersistenceError struct {
	Entity string
	Key    string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Entity, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(entity, key string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Entity: entity, Key: key, Err: err}
}
