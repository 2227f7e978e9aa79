package game

// EventKind names a match event.
type EventKind string

const (
	EventJoin   EventKind = "join"
	EventLeave  EventKind = "leave"
	EventKill   EventKind = "kill"
	EventPickup EventKind = "pickup"
)

// Event is a notable state change. For kills Actor is the shooter and Target
// the victim; for joins, leaves and pickups Actor is the tank concerned.
type Event struct {
	Kind   EventKind `json:"kind"`
	Tick   uint64    `json:"tick"`
	Actor  int       `json:"actor"`
	Target int       `json:"target"`
	Weapon FireMode  `json:"weapon,omitempty"`
	Name   string    `json:"name,omitempty"`
}
