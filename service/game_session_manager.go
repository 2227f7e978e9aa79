package service

import (
	"maps"
	"slices"
	"sync"

	"github.com/beka-birhanu/vinom-arena-server/network"
	"github.com/google/uuid"
)

// Session binds a registered connection to its player.
type Session struct {
	Conn   *network.Conn
	Player int
	Name   string
}

// Registry maps live connections to players. Ids are handed out
// sequentially from zero and never reused.
type Registry struct {
	sessions map[uuid.UUID]Session
	byPlayer map[int]uuid.UUID
	nextID   int
	sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]Session),
		byPlayer: make(map[int]uuid.UUID),
	}
}

// NextID reserves the next player id.
func (r *Registry) NextID() int {
	r.Lock()
	defer r.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

func (r *Registry) Add(s Session) {
	r.Lock()
	defer r.Unlock()
	r.sessions[s.Conn.ID()] = s
	r.byPlayer[s.Player] = s.Conn.ID()
}

// Remove unregisters the connection and returns the session it held.
func (r *Registry) Remove(connID uuid.UUID) (Session, bool) {
	r.Lock()
	defer r.Unlock()
	s, ok := r.sessions[connID]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, connID)
	delete(r.byPlayer, s.Player)
	return s, true
}

func (r *Registry) ByConn(connID uuid.UUID) (Session, bool) {
	r.RLock()
	defer r.RUnlock()
	s, ok := r.sessions[connID]
	return s, ok
}

func (r *Registry) ByPlayer(id int) (Session, bool) {
	r.RLock()
	defer r.RUnlock()
	connID, ok := r.byPlayer[id]
	if !ok {
		return Session{}, false
	}
	return r.sessions[connID], true
}

// Conns returns the registered connections ordered by player id.
func (r *Registry) Conns() []*network.Conn {
	r.RLock()
	defer r.RUnlock()
	out := make([]*network.Conn, 0, len(r.byPlayer))
	for _, id := range slices.Sorted(maps.Keys(r.byPlayer)) {
		out = append(out, r.sessions[r.byPlayer[id]].Conn)
	}
	return out
}

// Sessions returns the registered sessions ordered by player id.
func (r *Registry) Sessions() []Session {
	r.RLock()
	defer r.RUnlock()
	out := make([]Session, 0, len(r.byPlayer))
	for _, id := range slices.Sorted(maps.Keys(r.byPlayer)) {
		out = append(out, r.sessions[r.byPlayer[id]])
	}
	return out
}

func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.sessions)
}
