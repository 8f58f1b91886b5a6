// ABOUTME: Error taxonomy for negotiation actions
// ABOUTME: Separates validation, initial-load, and submission failures
package negotiation

import (
	"errors"
	"fmt"
)

// ValidationError is a synchronously caught bad input. No request is sent
// and no state changes; the message is shown to the user as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// FetchError is a failed initial load. The session renders a terminal
// failure view; no automatic retry is attempted.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load negotiation: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmitError is a failed mutating call. State is rolled back to the last
// confirmed snapshot; the user may re-trigger the same action.
type SubmitError struct {
	Action string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s submission failed: %v", e.Action, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotLoaded is returned for actions before a successful Initialize.
	ErrNotLoaded = errors.New("negotiation not loaded")

	// ErrThreadClosed is returned for mutating actions on a completed or
	// cancelled thread.
	ErrThreadClosed = errors.New("negotiation thread is closed")

	// ErrAwaitingResponse is returned when the turn-taking gate blocks the
	// viewer. The server enforces this too; the client refuses early.
	ErrAwaitingResponse = errors.New("awaiting the other party's response")

	// ErrSubmitInFlight is returned when a mutating action is re-triggered
	// while the previous submission has not completed.
	ErrSubmitInFlight = errors.New("another submission is in flight")
)
