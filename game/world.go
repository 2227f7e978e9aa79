package game

import (
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// World is the authoritative store of every entity plus the per-tick rules.
// All methods are safe for concurrent use; a step holds the lock for its whole
// duration so no mutation can interleave with it.
type World struct {
	cfg  Config
	rng  *rand.Rand
	tick uint64

	tanks       map[int]*Tank
	walls       map[int]*Wall
	projectiles map[int]*Projectile
	beams       map[int]*Beam
	powerups    map[int]*Powerup
	intents     map[int]Control // pending intent per tank, cleared every tick

	projectileIDs idSeq
	beamIDs       idSeq
	powerupIDs    idSeq

	powerupCount  int // live powerups, bounded by MaxWorldPowerups
	powerupFrames int // ticks since the last powerup spawn

	events []Event // produced by the current step

	mu sync.Mutex
}

// NewWorld creates a world with the given tuning and static walls.
func NewWorld(c Config, walls []Wall) *World {
	if c.Size <= 0 {
		c.Size = DefaultConfig().Size
	}
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	w := &World{
		cfg:         c,
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		tanks:       make(map[int]*Tank),
		walls:       make(map[int]*Wall, len(walls)),
		projectiles: make(map[int]*Projectile),
		beams:       make(map[int]*Beam),
		powerups:    make(map[int]*Powerup),
		intents:     make(map[int]Control),
	}
	for _, wall := range walls {
		w.walls[wall.ID] = &wall
	}
	return w
}

// Size returns the side length of the world.
func (w *World) Size() int { return w.cfg.Size }

// Config returns the world's tuning.
func (w *World) Config() Config { return w.cfg }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tick
}

// Walls returns the static walls ordered by id.
func (w *World) Walls() []Wall {
	out := make([]Wall, 0, len(w.walls))
	for _, id := range slices.Sorted(maps.Keys(w.walls)) {
		out = append(out, *w.walls[id])
	}
	return out
}

// AddTank places a new tank for player id at a random free spot.
func (w *World) AddTank(id int, name string) Tank {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := newTank(id, name, w.randomSpawn((*Wall).BlocksTank), w.cfg)
	w.tanks[id] = t
	return *t
}

// Disconnect flags the tank of player id. Despawn removes it once its health
// is zero.
func (w *World) Disconnect(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.tanks[id]; ok {
		t.Disconnected = true
	}
	delete(w.intents, id)
}

// StageIntent records c as player id's intent for the next step, replacing
// any intent staged earlier in the same tick.
func (w *World) StageIntent(id int, c Control) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.intents[id] = c
}

// Tank returns a copy of the tank of player id.
func (w *World) Tank(id int) (Tank, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tanks[id]
	if !ok {
		return Tank{}, false
	}
	return *t, true
}

// Tanks returns copies of all tanks ordered by id.
func (w *World) Tanks() []Tank {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Tank, 0, len(w.tanks))
	for _, id := range slices.Sorted(maps.Keys(w.tanks)) {
		out = append(out, *w.tanks[id])
	}
	return out
}

// Step advances the world by one tick and returns the events it produced.
func (w *World) Step() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step()
}

// Snapshot serializes the full current state: one frame per tank,
// projectile, powerup and beam.
func (w *World) Snapshot() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Advance steps the world and serializes the result under one lock.
func (w *World) Advance() ([]byte, []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	events := w.step()
	return w.snapshot(), events
}

// Handshake returns the static frames sent to every joining client after its
// id: the world size followed by one frame per wall.
func (w *World) Handshake() []byte {
	b := EncodeInt(w.cfg.Size)
	for _, wall := range w.Walls() {
		b, _ = AppendFrame(b, wall)
	}
	return b
}

func (w *World) snapshot() []byte {
	var b []byte
	for _, id := range slices.Sorted(maps.Keys(w.tanks)) {
		b, _ = AppendFrame(b, w.tanks[id])
	}
	for _, id := range slices.Sorted(maps.Keys(w.projectiles)) {
		b, _ = AppendFrame(b, w.projectiles[id])
	}
	for _, id := range slices.Sorted(maps.Keys(w.powerups)) {
		b, _ = AppendFrame(b, w.powerups[id])
	}
	for _, id := range slices.Sorted(maps.Keys(w.beams)) {
		b, _ = AppendFrame(b, w.beams[id])
	}
	return b
}

// randomSpawn draws integer points uniformly inside the world until one is
// clear of every wall. A layout without free space never returns.
func (w *World) randomSpawn(blocked func(*Wall, Vector2D) bool) Vector2D {
	half := w.cfg.Size / 2
	for {
		p := Vector2D{
			X: float64(w.rng.IntN(w.cfg.Size) - half),
			Y: float64(w.rng.IntN(w.cfg.Size) - half),
		}
		free := true
		for _, wall := range w.walls {
			if blocked(wall, p) {
				free = false
				break
			}
		}
		if free {
			return p
		}
	}
}
