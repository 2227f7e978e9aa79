package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/beka-birhanu/vinom-arena-server/game"
	"github.com/beka-birhanu/vinom-arena-server/network"
	"github.com/beka-birhanu/vinom-arena-server/service/i"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
)

// Server errors.
var (
	ErrHandshake     = errors.New("invalid handshake")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrNoWorld       = errors.New("world is required")
	ErrNoLogger      = errors.New("logger is required")
)

const (
	defaultTickPeriod = 17 * time.Millisecond
	maxNameLength     = 16
)

// Server drives the arena: it registers players arriving over the transport,
// stages their intents and, once per period, steps the world and broadcasts
// the full snapshot to every session.
type Server struct {
	world      *game.World
	registry   *Registry
	period     time.Duration
	logger     general_i.Logger
	publisher  i.EventPublisher
	spectators i.SnapshotSink

	tickMu   sync.Mutex // one step and broadcast at a time
	stop     chan struct{}
	stopOnce sync.Once
}

type Config struct {
	World      *game.World
	Period     time.Duration
	Logger     general_i.Logger
	Publisher  i.EventPublisher // optional
	Spectators i.SnapshotSink   // optional
}

var (
	_ i.GameServer     = (*Server)(nil)
	_ i.SessionManager = (*Server)(nil)
)

func NewServer(c *Config) (*Server, error) {
	if c.World == nil {
		return nil, ErrNoWorld
	}
	if c.Logger == nil {
		return nil, ErrNoLogger
	}
	period := c.Period
	if period <= 0 {
		period = defaultTickPeriod
	}

	return &Server{
		world:      c.World,
		registry:   NewRegistry(),
		period:     period,
		logger:     c.Logger,
		publisher:  c.Publisher,
		spectators: c.Spectators,
		stop:       make(chan struct{}),
	}, nil
}

// HandleConnection waits for the player's name on a freshly accepted
// connection. Failed accepts are logged and dropped.
func (s *Server) HandleConnection(c *network.Conn) {
	if c.ErrorOccurred() {
		s.logger.Warning(fmt.Sprintf("accept failed: %s", c.ErrorMessage()))
		return
	}
	s.logger.Info(fmt.Sprintf("connection from %s", c.RemoteAddr()))
	c.Receive(s.registerPlayer)
}

// registerPlayer consumes frames until a valid name arrives. Bad names are
// handshake errors: logged, and the connection kept.
func (s *Server) registerPlayer(c *network.Conn) {
	if c.ErrorOccurred() {
		s.logger.Info(fmt.Sprintf("connection %s closed before joining: %s", c.RemoteAddr(), c.ErrorMessage()))
		return
	}

	frames := c.TakeFrames()
	for n, frame := range frames {
		name, err := playerName(frame)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("handshake from %s: %s", c.RemoteAddr(), err))
			continue
		}
		s.join(c, name, frames[n+1:])
		return
	}
	c.Receive(nil)
}

func (s *Server) join(c *network.Conn, name string, pending []string) {
	id := s.registry.NextID()
	c.Send(append(game.EncodeInt(id), s.world.Handshake()...))

	s.world.AddTank(id, name)
	s.registry.Add(Session{Conn: c, Player: id, Name: name})
	s.stageIntents(id, pending)

	s.logger.Info(fmt.Sprintf("player %d (%s) joined", id, name))
	s.publish(game.Event{Kind: game.EventJoin, Tick: s.world.Tick(), Actor: id, Target: id, Name: name})
	c.Receive(s.receiveIntents)
}

func (s *Server) receiveIntents(c *network.Conn) {
	sess, ok := s.registry.ByConn(c.ID())
	if !ok {
		return
	}
	if c.ErrorOccurred() {
		s.disconnect(sess, c.ErrorMessage())
		return
	}

	s.stageIntents(sess.Player, c.TakeFrames())
	c.Receive(nil)
}

// stageIntents stages every well-formed control frame in order; the last one
// wins for the coming tick. Frames that are not JSON are ignored.
func (s *Server) stageIntents(player int, frames []string) {
	for _, f := range frames {
		ctl, err := game.DecodeControl([]byte(f))
		if err != nil {
			continue
		}
		s.world.StageIntent(player, ctl)
	}
}

// disconnect unregisters the session immediately. The tank stays in the
// world until despawn removes it.
func (s *Server) disconnect(sess Session, reason string) {
	if _, ok := s.registry.Remove(sess.Conn.ID()); !ok {
		return
	}
	s.world.Disconnect(sess.Player)
	_ = sess.Conn.Close()

	s.logger.Info(fmt.Sprintf("player %d (%s) left: %s", sess.Player, sess.Name, reason))
	s.publish(game.Event{Kind: game.EventLeave, Tick: s.world.Tick(), Actor: sess.Player, Target: sess.Player, Name: sess.Name})
}

// Tick steps the world once and sends the snapshot to every session and
// spectator. Failed sends are not retried; they surface on the next receive.
func (s *Server) Tick() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	snapshot, events := s.world.Advance()
	for _, e := range events {
		s.publish(e)
	}
	if len(snapshot) == 0 {
		return
	}
	for _, c := range s.registry.Conns() {
		c.Send(snapshot)
	}
	if s.spectators != nil {
		s.spectators.Broadcast(snapshot)
	}
}

// Start runs the tick loop and blocks until Stop.
func (s *Server) Start() {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Info(fmt.Sprintf("arena running, world %d, tick %s", s.world.Size(), s.period))
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Stop ends the tick loop and closes every session. It is safe to call more
// than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		for _, sess := range s.registry.Sessions() {
			s.disconnect(sess, "server stopping")
		}
		s.logger.Info("arena stopped")
	})
}

// Players returns every registered player ordered by id.
func (s *Server) Players() []i.PlayerInfo {
	sessions := s.registry.Sessions()
	out := make([]i.PlayerInfo, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, s.playerInfo(sess))
	}
	return out
}

func (s *Server) Player(id int) (i.PlayerInfo, error) {
	sess, ok := s.registry.ByPlayer(id)
	if !ok {
		return i.PlayerInfo{}, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	return s.playerInfo(sess), nil
}

func (s *Server) Kick(id int) error {
	sess, ok := s.registry.ByPlayer(id)
	if !ok {
		return fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	s.logger.Info(fmt.Sprintf("kicking player %d (%s)", id, sess.Name))
	s.disconnect(sess, "kicked")
	return nil
}

func (s *Server) playerInfo(sess Session) i.PlayerInfo {
	info := i.PlayerInfo{ID: sess.Player, Name: sess.Name}
	if t, ok := s.world.Tank(sess.Player); ok {
		info.Score = t.Score
		info.Health = t.Health
		info.Died = t.Died
		info.Connected = !t.Disconnected
	}
	return info
}

func (s *Server) publish(e game.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

// playerName validates the first frame of a connection.
func playerName(frame string) (string, error) {
	name := strings.TrimSpace(frame)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrHandshake)
	}
	if strings.HasPrefix(name, "{") {
		return "", fmt.Errorf("%w: control frame before name", ErrHandshake)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name, nil
}
