// Package planner implements the incremental draft-generation client: it
// requests AI-authored trip drafts, consumes them as a progressive event
// stream, folds the frames into a phased draft, and applies structured
// mutation commands with snapshot-based undo.
package planner

import "fmt"

// Fixed user-facing messages for transport-level failures. These are
// deliberately distinct from server errors, which carry the response body's
// error field when present.
const (
	MsgNetworkUnreachable = "Network error – verify API is reachable"
	MsgStreamUnreachable  = "Network error – streaming endpoint unreachable"
)

// Generic fallbacks used when a non-success response carries no error body.
// Each non-streaming operation surfaces its own message.
const (
	MsgRefineFailed       = "Refine failed"
	MsgIntentParseFailed  = "Intent parse failed"
	MsgFlightIntentFailed = "Flight intent failed"
	MsgSessionFailed      = "Session failed"
	MsgUploadFailed       = "Upload failed"
)

// ValidationError rejects an operation before any request is issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NetworkError is a transport-level failure: no response was obtained.
type NetworkError struct {
	Msg string
	Err error
}

func (e *NetworkError) Error() string { return e.Msg }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success response. Msg is taken from the response
// body's error field when present, else a generic fallback for the
// operation.
type ServerError struct {
	Status int
	Msg    string
}

func (e *ServerError) Error() string { return e.Msg }

// StorageError reports a failed draft handoff to durable storage.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "failed to store draft" }
func (e *StorageError) Unwrap() error { return e.Err }

func requestFailed(status int) string {
	return fmt.Sprintf("Request failed (%d)", status)
}

func streamRequestFailed(status int) string {
	return fmt.Sprintf("Stream request failed (%d)", status)
}
