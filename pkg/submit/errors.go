package submit

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL     = errors.New("submit: invalid URL")
	ErrInvalidPayload = errors.New("submit: invalid payload")
	ErrRequestFailed  = errors.New("submit: request failed")
	ErrBreakerOpen    = errors.New("submit: endpoint disabled after repeated failures")
	ErrInvalidSecret  = errors.New("submit: signing secret is required")
	ErrBadSignature   = errors.New("submit: invalid signature")
)

// StatusError is returned for responses outside the 2xx range. Data holds
// the decoded response body.
type StatusError struct {
	Status int
	Data   any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("submit: server responded with status %d", e.Status)
}

func IsStatusError(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}

// AsStatusError extracts the StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var e *StatusError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
