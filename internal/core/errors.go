package core

import "errors"

// Error codes surfaced to clients in protocol error frames.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	ErrRoomFull   = errors.New("room full")
	ErrBadRequest = errors.New("bad request")
)
