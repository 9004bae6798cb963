package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a transport failure from the upstream API: a non-2xx response
// or an unreachable endpoint. It carries the HTTP status and any
// upstream-provided error payload rather than swallowing them.
type APIError struct {
	Status  int             `json:"status,omitempty"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("upstream api: %s", e.Message)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
