package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/game"
	"github.com/beka-birhanu/vinom-arena-server/network"
)

// Controller errors.
var (
	ErrNotConnected = errors.New("not connected")
	ErrHandshake    = errors.New("unexpected handshake frame")
)

type handshakeStage int

const (
	awaitingID handshakeStage = iota
	awaitingSize
	streaming
)

// Callbacks are invoked from the transport's goroutines. Any may be nil.
type Callbacks struct {
	OnConnected func(v *View)
	OnUpdate    func(v *View)
	OnError     func(err error)
}

// Controller is the player side of the protocol: it joins under a name,
// mirrors the server state into a View and sends one intent per client frame.
type Controller struct {
	name string
	view *View
	cb   Callbacks

	conn  *network.Conn
	stage handshakeStage

	held []game.Movement // pressed movement keys, most recent last
	fire game.FireMode
	aim  game.Vector2D

	mu sync.Mutex
}

func NewController(name string, cb Callbacks) *Controller {
	return &Controller{
		name: name,
		view: NewView(),
		cb:   cb,
		fire: game.FireNone,
		aim:  game.Vector2D{X: 1},
	}
}

func (c *Controller) View() *View { return c.view }

// Connect dials the server, blocking for at most timeout, and sends the
// player name. Failures are returned and also reported through OnError.
func (c *Controller) Connect(host string, port int, timeout time.Duration) error {
	conn := <-network.Await(func(h network.Handler) { network.Connect(host, port, timeout, h) })
	if conn.ErrorOccurred() {
		err := fmt.Errorf("connecting to %s:%d: %w", host, port, conn.Err())
		c.report(err)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	conn.Send(network.Frame(c.name))
	conn.Receive(c.receive)
	if c.cb.OnConnected != nil {
		c.cb.OnConnected(c.view)
	}
	return nil
}

func (c *Controller) receive(conn *network.Conn) {
	if conn.ErrorOccurred() {
		c.report(fmt.Errorf("connection lost: %w", conn.Err()))
		return
	}

	updated := false
	for _, frame := range conn.TakeFrames() {
		if err := c.consume(frame); err != nil {
			c.report(err)
			_ = conn.Close()
			return
		}
		updated = true
	}
	if updated && c.cb.OnUpdate != nil {
		c.cb.OnUpdate(c.view)
	}
	conn.Receive(nil)
}

// consume handles one server frame: the id, the world size, then walls and
// state frames. Frames that fail to decode after the handshake are skipped.
func (c *Controller) consume(frame string) error {
	c.mu.Lock()
	stage := c.stage
	c.mu.Unlock()

	switch stage {
	case awaitingID, awaitingSize:
		n, err := game.DecodeInt([]byte(frame))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrHandshake, frame)
		}
		if stage == awaitingID {
			c.view.setIdentity(n)
		} else {
			c.view.setSize(n)
		}
		c.mu.Lock()
		c.stage++
		c.mu.Unlock()
	default:
		f, err := game.DecodeFrame([]byte(frame))
		if err != nil {
			return nil
		}
		c.view.Apply(f)
	}
	return nil
}

// Press marks a movement key as held. The most recently pressed held key
// decides the direction.
func (c *Controller) Press(m game.Movement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = slices.DeleteFunc(c.held, func(h game.Movement) bool { return h == m })
	c.held = append(c.held, m)
}

// Release lets go of a movement key; the previously held key takes over.
func (c *Controller) Release(m game.Movement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = slices.DeleteFunc(c.held, func(h game.Movement) bool { return h == m })
}

func (c *Controller) Movement() game.Movement {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.held) == 0 {
		return game.MoveNone
	}
	return c.held[len(c.held)-1]
}

// SetFire selects the weapon fired while the button is held.
func (c *Controller) SetFire(m game.FireMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fire = m
}

func (c *Controller) ReleaseFire() {
	c.SetFire(game.FireNone)
}

// AimAt points the turret from the local tank towards target, in world
// coordinates. It is a no-op until the tank is known, so intents carry the
// spawn aim until then and never a zero one.
func (c *Controller) AimAt(target game.Vector2D) {
	me, ok := c.view.Me()
	if !ok {
		return
	}
	dir := target.Sub(me.Location)
	if dir.IsZero() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.aim = dir.Normalize()
}

// Intent returns the control frame the next SendIntent would send.
func (c *Controller) Intent() game.Control {
	m := c.Movement()
	c.mu.Lock()
	defer c.mu.Unlock()
	return game.Control{Moving: m, Fire: c.fire, Aim: c.aim}
}

// SendIntent queues the current intent.
func (c *Controller) SendIntent() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil || conn.State() != network.Open {
		return ErrNotConnected
	}
	if !conn.Send(game.EncodeControl(c.Intent())) {
		return ErrNotConnected
	}
	return nil
}

// Run sends one intent per period until ctx is done or the connection drops.
func (c *Controller) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.SendIntent(); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (c *Controller) report(err error) {
	if c.cb.OnError != nil {
		c.cb.OnError(err)
	}
}
