package network

import (
	"errors"
	"fmt"
)

// Transport outcomes other than OS level failures.
var (
	ErrTimeout          = errors.New("connection attempt timed out")
	ErrConnectionClosed = errors.New("connection closed")
	ErrNotOpen          = errors.New("connection is not open")
)

// Error is a terminal transport failure on one connection.
type Error struct {
	Op  string // accept, connect, receive or send
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
