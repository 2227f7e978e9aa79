package network

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"
)

// DefaultConnectTimeout bounds a connection attempt when none is given.
const DefaultConnectTimeout = 3 * time.Second

// Connect resolves host and dials it, blocking for at most timeout. onResult
// receives an Open Conn, or a Closed one whose error wraps ErrTimeout or the
// dial failure.
func Connect(host string, port int, timeout time.Duration, onResult Handler) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c := newPending()
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		c.fail("connect", dialError(err))
		onResult(c)
		return
	}
	onResult(c.attach(nc))
}

// dialError maps any deadline outcome of a dial to ErrTimeout.
func dialError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return ErrTimeout
	}
	return err
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
