package types

import "errors"

var (
	// ErrUnavailable indicates a player response without streamingData
	// (age restricted, removed, members only). The client shows a notice and keeps running.
	ErrUnavailable = errors.New("video unavailable")

	// ErrUnparseable indicates a payload that does not match the shape its decoder expects.
	ErrUnparseable = errors.New("unparseable response")

	// ErrAnchorNotFound indicates that a text marker used to locate the player
	// script or one of its functions is missing.
	ErrAnchorNotFound = errors.New("extraction anchor not found")

	// ErrTransport indicates a network or IO failure talking to the backend.
	ErrTransport = errors.New("transport failure")

	// ErrNoCandidate indicates that no adaptive format exists for a required kind.
	ErrNoCandidate = errors.New("no candidate format")
)

// IsRecoverable reports whether err should pause the UI with a notice
// instead of terminating the session.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
