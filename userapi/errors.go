package userapi

import "fmt"

// RequestFailedError is returned when the user API answers with a status that the call
// does not accept.
type RequestFailedError struct {
	Status     int
	StatusText string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.StatusText)
}
