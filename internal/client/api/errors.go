package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when an authenticated call comes back with
// 401, or when no token is available for a call that requires one. Callers
// treat it exactly like an absent session: clear local state and ask the
// user to log in again.
var ErrSessionExpired = errors.New("session expired")

// Error is a failure the server itself reported: a non-2xx status with a
// structured message, or a 2xx body whose status field says the operation
// failed. The message is surfaced to the user verbatim when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: status %d", e.Status)
}

// NetworkError means the request never produced a server response:
// connection refused, DNS failure, timeout. Distinguished from Error so the
// UI can suggest checking that the server is running instead of relaying a
// server message.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
