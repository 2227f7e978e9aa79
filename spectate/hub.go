package spectate

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 54 * time.Second
	sendBuffered = 64
)

// Hub streams snapshots to read-only websocket spectators. Each spectator
// first receives the handshake (world size and walls), then one text message
// per tick. A spectator that cannot keep up is dropped.
type Hub struct {
	upgrader  websocket.Upgrader
	handshake func() []byte
	logger    general_i.Logger

	clients map[*spectator]struct{}
	closed  bool
	mu      sync.RWMutex
}

type spectator struct {
	addr      string
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

// NewHub creates a hub whose spectators are greeted with handshake().
func NewHub(handshake func() []byte, logger general_i.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		handshake: handshake,
		logger:    logger,
		clients:   make(map[*spectator]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warning(fmt.Sprintf("upgrading spectator %s: %s", r.RemoteAddr, err))
		return
	}

	s := &spectator{addr: r.RemoteAddr, conn: conn, send: make(chan []byte, sendBuffered)}
	s.send <- h.handshake()
	if !h.register(s) {
		_ = conn.Close()
		return
	}

	go h.writePump(s)
	go h.readPump(s)
	h.logger.Info(fmt.Sprintf("spectator %s connected", r.RemoteAddr))
}

// Broadcast queues snapshot for every spectator without blocking.
func (h *Hub) Broadcast(snapshot []byte) {
	var slow []*spectator

	h.mu.RLock()
	for s := range h.clients {
		select {
		case s.send <- snapshot:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range slow {
		h.logger.Warning(fmt.Sprintf("dropping slow spectator %s", s.addr))
		h.unregister(s)
	}
}

// Len returns the number of connected spectators.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*spectator, 0, len(h.clients))
	for s := range h.clients {
		clients = append(clients, s)
	}
	h.mu.Unlock()

	for _, s := range clients {
		h.unregister(s)
	}
}

func (h *Hub) register(s *spectator) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[s] = struct{}{}
	return true
}

func (h *Hub) unregister(s *spectator) {
	h.mu.Lock()
	delete(h.clients, s)
	h.mu.Unlock()
	s.closeOnce.Do(func() { close(s.send) })
}

func (h *Hub) writePump(s *spectator) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.unregister(s)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(s)
				return
			}
		}
	}
}

// readPump discards anything a spectator sends and notices when it leaves.
func (h *Hub) readPump(s *spectator) {
	defer h.unregister(s)

	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
