package client

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned for drafts rejected before any request.
	ErrValidation = errors.New("client: invalid draft")
	// ErrPayloadTooLarge is the server's 413; the user should pick another photo.
	ErrPayloadTooLarge = errors.New("client: image too large, try a different photo")
	// ErrServer wraps every other non-2xx answer.
	ErrServer = errors.New("client: server error")
	// ErrSubmitInFlight rejects a submission while another one is running.
	ErrSubmitInFlight = errors.New("client: a submission is already in flight")
	// ErrUnknownGift is returned when an id is not in the cached list.
	ErrUnknownGift = errors.New("client: gift not in the current list")
	// ErrNoHandler is returned by Dispatch for an unbound (action, id).
	ErrNoHandler = errors.New("client: no handler bound")
)

// StatusError carries the HTTP status and the error envelope of a failed call.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// Is maps 413 onto ErrPayloadTooLarge and everything else onto ErrServer.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrPayloadTooLarge:
		return e.Status == 413
	case ErrServer:
		return e.Status != 413
	}
	return false
}
