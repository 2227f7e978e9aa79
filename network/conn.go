package network

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	readChunkSize = 4096
	sendQueueSize = 256
	writeTimeout  = 5 * time.Second
)

// State is a connection's position in its one-way lifecycle.
type State int32

const (
	Connecting State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// Handler is invoked once per completed operation: accept, connect or
// receive. Failures arrive through the same handler with the connection's
// error flag set.
type Handler func(c *Conn)

// Conn wraps one stream socket. Received bytes accumulate in an internal
// buffer until the owner consumes them; outbound writes go through a single
// writer so they never interleave.
type Conn struct {
	id uuid.UUID
	nc net.Conn

	state   atomic.Int32
	reading atomic.Bool

	mu      sync.Mutex // guards buf, err and handler
	buf     []byte
	err     error
	handler Handler

	sendq     chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newPending() *Conn {
	c := &Conn{
		id:    uuid.New(),
		sendq: make(chan []byte, sendQueueSize),
		done:  make(chan struct{}),
	}
	c.state.Store(int32(Connecting))
	return c
}

// attach moves a pending connection to Open on top of nc.
func (c *Conn) attach(nc net.Conn) *Conn {
	c.nc = nc
	c.state.Store(int32(Open))
	go c.writeLoop()
	return c
}

// failedConn is the outcome of an accept or connect that never produced a socket.
func failedConn(op string, err error) *Conn {
	c := newPending()
	c.fail(op, err)
	return c
}

// ID is the connection's opaque identity, never reused.
func (c *Conn) ID() uuid.UUID { return c.id }

// State returns the current lifecycle state.
func (c *Conn) State() State { return State(c.state.Load()) }

// RemoteAddr returns the peer address, or "" when there is no socket.
func (c *Conn) RemoteAddr() string {
	if c.nc == nil {
		return ""
	}
	return c.nc.RemoteAddr().String()
}

// ErrorOccurred reports whether the connection hit a terminal failure.
func (c *Conn) ErrorOccurred() bool {
	return c.Err() != nil
}

// Err returns the terminal failure, if any, as an *Error.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ErrorMessage returns the failure text, or "" when there is none.
func (c *Conn) ErrorMessage() string {
	if err := c.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Data returns a copy of the unconsumed receive buffer.
func (c *Conn) Data() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf...)
}

// Discard removes the first n bytes of the receive buffer.
func (c *Conn) Discard(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n = min(n, len(c.buf))
	c.buf = c.buf[n:]
}

// Receive registers onData, when non-nil, and arms exactly one read. On
// completion the bytes read are appended to the buffer and the registered
// handler runs once. The read is never re-armed automatically; calling
// Receive while a read is pending has no effect.
func (c *Conn) Receive(onData Handler) {
	c.mu.Lock()
	if onData != nil {
		c.handler = onData
	}
	h := c.handler
	c.mu.Unlock()
	if h == nil {
		return
	}

	if c.State() != Open {
		c.fail("receive", ErrNotOpen)
		go h(c)
		return
	}
	if !c.reading.CompareAndSwap(false, true) {
		return
	}
	go c.read(h)
}

func (c *Conn) read(h Handler) {
	chunk := make([]byte, readChunkSize)
	n, err := c.nc.Read(chunk)
	if n > 0 {
		c.mu.Lock()
		c.buf = append(c.buf, chunk[:n]...)
		c.mu.Unlock()
	}
	c.reading.Store(false)

	switch {
	case n > 0:
		// A trailing error shows up on the next read.
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		c.fail("receive", ErrConnectionClosed)
	default:
		c.fail("receive", err)
	}
	h(c)
}

// Send queues b for writing and reports whether it was accepted. Acceptance
// says nothing about delivery; a write failure closes the connection and
// surfaces on the next receive.
func (c *Conn) Send(b []byte) bool {
	if c.State() != Open {
		return false
	}
	select {
	case <-c.done:
		return false
	case c.sendq <- b:
		return true
	default:
		return false
	}
}

func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case b := <-c.sendq:
			_ = c.nc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := c.nc.Write(b); err != nil {
				c.fail("send", err)
				return
			}
		}
	}
}

// fail records the first terminal error and closes the connection.
func (c *Conn) fail(op string, err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = &Error{Op: op, Err: err}
	}
	c.mu.Unlock()
	_ = c.Close()
}

// Close moves the connection to Closed and releases the socket. Queued but
// unwritten data is dropped. It is safe to call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.state.Store(int32(Closed))
		close(c.done)
		if c.nc != nil {
			err = c.nc.Close()
		}
	})
	return err
}

// Await runs a callback-style operation and returns a channel yielding its
// first outcome. Later invocations of the same handler are ignored.
func Await(op func(Handler)) <-chan *Conn {
	ch := make(chan *Conn, 1)
	var once sync.Once
	go op(func(c *Conn) {
		once.Do(func() { ch <- c })
	})
	return ch
}
