package network

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const acceptPause = 10 * time.Millisecond

// Listener accepts stream connections and hands each one to its callback.
type Listener struct {
	ln       net.Listener
	onAccept Handler
	closed   atomic.Bool
	wg       sync.WaitGroup
}

// Listen binds host:port and starts the accept loop. Every accepted socket is
// wrapped as an Open Conn and passed to onAccept before the next accept is
// armed. A failed accept is reported to onAccept as an errored Conn and the
// loop carries on.
func Listen(host string, port int, onAccept Handler) (*Listener, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("listening on port %d: %w", port, err)
	}

	l := &Listener{ln: ln, onAccept: onAccept}
	l.wg.Add(1)
	go l.acceptLoop()
	return l, nil
}

func (l *Listener) acceptLoop() {
	defer l.wg.Done()
	for {
		nc, err := l.ln.Accept()
		if err != nil {
			if l.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			l.onAccept(failedConn("accept", err))
			time.Sleep(acceptPause)
			continue
		}
		l.onAccept(newPending().attach(nc))
	}
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Port returns the bound TCP port, useful when listening on port 0.
func (l *Listener) Port() int {
	if a, ok := l.ln.Addr().(*net.TCPAddr); ok {
		return a.Port
	}
	return 0
}

// Close stops accepting. Connections already handed out stay open.
func (l *Listener) Close() error {
	l.closed.Store(true)
	err := l.ln.Close()
	l.wg.Wait()
	return err
}
