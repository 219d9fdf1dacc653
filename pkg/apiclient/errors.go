package apiclient

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated means an operation that requires an identity was
// attempted with no token present. The request is never sent.
var ErrNotAuthenticated = errors.New("not authenticated")

// Error is a non-success response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsRejection reports whether err is an explicit backend refusal, as opposed
// to a transport failure. Session validation clears state only on rejection.
func IsRejection(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}
