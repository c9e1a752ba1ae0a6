package domain

import "errors"

var (
	ErrNotFound     = errors.New("project not found")
	ErrUnknownModel = errors.New("unknown model")
)

// StoreError is a storage failure with a message safe to show users.
// Err keeps the underlying driver error for logs and errors.Is.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return e.Message }

func (e *StoreError) Unwrap() error { return e.Err }
