package composer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPrompt        = errors.New("prompt is empty")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// StoreRejectedError reports that the project store refused a create request.
// Detail is user-facing text from the store.
type StoreRejectedError struct {
	Detail string
	Err    error
}

func (e *StoreRejectedError) Error() string {
	return fmt.Sprintf("store rejected project: %s", e.Detail)
}

func (e *StoreRejectedError) Unwrap() error {
	return e.Err
}
