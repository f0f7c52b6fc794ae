package growatt

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when an operation needs a session but no
// credentials have been stored to establish one.
var ErrNotAuthenticated = errors.New("growatt: not authenticated")

// RequestError covers transport failures and non-2xx HTTP statuses.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("growatt: request failed: %v", e.Err)
	}
	return fmt.Sprintf("growatt: request failed with status %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// AuthError is returned when the portal rejects the supplied credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "growatt: authentication failed: " + e.Message
}

// MalformedJSONError is returned when a response body is not valid JSON or
// does not fit the requested shape.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("growatt: malformed json response: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}

// InvalidResponseError is returned when a response is well-formed JSON but is
// missing expected fields, or carries the portal's "empty" sentinel which it
// uses interchangeably with a real error.
type InvalidResponseError struct {
	Message string
}

func (e *InvalidResponseError) Error() string {
	return "growatt: invalid response: " + e.Message
}
