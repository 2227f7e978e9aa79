package client

import (
	"maps"
	"slices"
	"sync"

	"github.com/beka-birhanu/vinom-arena-server/game"
)

// View mirrors the server state as seen by one client.
type View struct {
	id   int
	size int

	walls       map[int]game.Wall
	tanks       map[int]game.Tank
	projectiles map[int]game.Projectile
	powerups    map[int]game.Powerup
	beams       []game.Beam

	mu sync.Mutex
}

func NewView() *View {
	return &View{
		id:          -1,
		walls:       make(map[int]game.Wall),
		tanks:       make(map[int]game.Tank),
		projectiles: make(map[int]game.Projectile),
		powerups:    make(map[int]game.Powerup),
	}
}

func (v *View) setIdentity(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.id = id
}

func (v *View) setSize(size int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.size = size
}

// Apply merges one decoded frame. Entities flagged as gone are removed.
func (v *View) Apply(f game.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch f.Kind {
	case game.KindTank:
		if f.Tank.Disconnected {
			delete(v.tanks, f.Tank.ID)
			return
		}
		v.tanks[f.Tank.ID] = *f.Tank
	case game.KindProjectile:
		if f.Projectile.Died {
			delete(v.projectiles, f.Projectile.ID)
			return
		}
		v.projectiles[f.Projectile.ID] = *f.Projectile
	case game.KindPowerup:
		if f.Powerup.Died {
			delete(v.powerups, f.Powerup.ID)
			return
		}
		v.powerups[f.Powerup.ID] = *f.Powerup
	case game.KindBeam:
		v.beams = append(v.beams, *f.Beam)
	case game.KindWall:
		v.walls[f.Wall.ID] = *f.Wall
	}
}

// ID returns the identity assigned by the server, or -1 before the handshake.
func (v *View) ID() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.id
}

// Size returns the world size, or 0 before the handshake.
func (v *View) Size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// Me returns the local player's tank.
func (v *View) Me() (game.Tank, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, ok := v.tanks[v.id]
	return t, ok
}

func (v *View) Tanks() []game.Tank {
	v.mu.Lock()
	defer v.mu.Unlock()
	return sortedValues(v.tanks)
}

func (v *View) Projectiles() []game.Projectile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return sortedValues(v.projectiles)
}

func (v *View) Powerups() []game.Powerup {
	v.mu.Lock()
	defer v.mu.Unlock()
	return sortedValues(v.powerups)
}

func (v *View) Walls() []game.Wall {
	v.mu.Lock()
	defer v.mu.Unlock()
	return sortedValues(v.walls)
}

// TakeBeams returns the beams received since the last call. Beams last one
// tick, so a renderer draws each once.
func (v *View) TakeBeams() []game.Beam {
	v.mu.Lock()
	defer v.mu.Unlock()
	b := v.beams
	v.beams = nil
	return b
}

func sortedValues[T any](m map[int]T) []T {
	out := make([]T, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[id])
	}
	return out
}
