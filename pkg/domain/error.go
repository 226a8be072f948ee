package domain

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidMessage    = goerr.New("invalid message")
	ErrNotAPIResponse    = goerr.New("not an API response")
	ErrMalformedResponse = goerr.New("malformed error response")
	ErrConfiguration     = goerr.New("configuration error")
)

// WebhookError is returned when the Rocket.Chat server answers with a
// non-JSON body or with an explicit error status.
type WebhookError struct {
	Status  int
	Message string

	cause error
}

func NewWebhookError(status int, message string, cause error) *WebhookError {
	return &WebhookError{
		Status:  status,
		Message: message,
		cause:   cause,
	}
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("Rocket.Chat server error, code %d: %s", e.Status, e.Message)
}

func (e *WebhookError) Unwrap() error {
	return e.cause
}
