package game

import (
	"maps"
	"slices"
)

// step runs one tick. The caller holds w.mu.
func (w *World) step() []Event {
	w.tick++
	w.events = nil

	w.despawn()
	w.applyIntents()
	w.advanceProjectiles()
	w.resolveTanks()
	w.spawnPowerups()

	return w.events
}

// despawn drops what died last tick, clears last tick's death flags and
// beams, and removes disconnected tanks whose health reached zero.
func (w *World) despawn() {
	for id, p := range w.projectiles {
		if p.Died {
			delete(w.projectiles, id)
		}
	}
	for id, p := range w.powerups {
		if p.Died {
			delete(w.powerups, id)
		}
	}
	clear(w.beams)

	for id, t := range w.tanks {
		switch {
		case t.Disconnected && t.Health == 0:
			delete(w.tanks, id)
		case t.Disconnected:
			// Shown once with zero health, removed on the next tick.
			t.Health = 0
		default:
			t.Died = false
		}
	}
}

// applyIntents consumes the staged intents of live tanks, then clears them.
func (w *World) applyIntents() {
	for _, id := range slices.Sorted(maps.Keys(w.intents)) {
		t, ok := w.tanks[id]
		if !ok || t.Disconnected || t.Respawning() {
			continue
		}
		c := w.intents[id]

		if dir, moving := c.Moving.direction(); moving {
			t.velocity = dir.Scale(w.cfg.TankSpeed)
			t.Orientation = dir
		} else {
			t.velocity = Vector2D{}
		}

		if !c.Aim.IsZero() {
			t.Aim = c.Aim
		}

		switch c.Fire {
		case FireMain:
			if t.fireCooldown >= w.cfg.FireRate {
				p := &Projectile{
					ID:        w.projectileIDs.take(),
					Location:  t.Location,
					Direction: t.Aim,
					Owner:     t.ID,
				}
				w.projectiles[p.ID] = p
				t.fireCooldown = 0
			}
		case FireAlt:
			if t.powerups > 0 {
				b := &Beam{
					ID:        w.beamIDs.take(),
					Origin:    t.Location,
					Direction: t.Aim,
					Owner:     t.ID,
				}
				w.beams[b.ID] = b
				t.powerups--
			}
		}
	}
	clear(w.intents)

	for _, t := range w.tanks {
		if t.fireCooldown < w.cfg.FireRate {
			t.fireCooldown++
		}
	}
}

// advanceProjectiles moves live projectiles and kills those leaving the world
// or entering a wall.
func (w *World) advanceProjectiles() {
	half := float64(w.cfg.Size) / 2
	for _, p := range w.projectiles {
		if p.Died {
			continue
		}
		p.Location = p.Location.Add(p.Direction.Normalize().Scale(w.cfg.ProjectileSpeed))

		if p.Location.X > half || p.Location.X < -half || p.Location.Y > half || p.Location.Y < -half {
			p.Died = true
			continue
		}
		for _, wall := range w.walls {
			if wall.blocksProjectile(p.Location) {
				p.Died = true
				break
			}
		}
	}
}

// resolveTanks runs respawn timers, hits, pickups, movement and wraparound
// for every tank in id order.
func (w *World) resolveTanks() {
	projectileIDs := slices.Sorted(maps.Keys(w.projectiles))
	powerupIDs := slices.Sorted(maps.Keys(w.powerups))
	beamIDs := slices.Sorted(maps.Keys(w.beams))

	for _, id := range slices.Sorted(maps.Keys(w.tanks)) {
		t := w.tanks[id]
		// Despawn already zeroed a disconnected tank's health; it takes no
		// hits, pickups or moves before removal.
		if t.Disconnected {
			continue
		}

		if t.Respawning() {
			t.respawnTimer++
			if t.respawnTimer > w.cfg.RespawnDelay {
				t.respawnTimer = 0
				t.Health = w.cfg.TankHealth
				t.velocity = Vector2D{}
				t.Location = w.randomSpawn((*Wall).BlocksTank)
			}
			continue
		}

		if w.hitByProjectiles(t, projectileIDs) {
			continue
		}
		w.collectPowerups(t, powerupIDs)
		if w.hitByBeams(t, beamIDs) {
			continue
		}
		w.move(t)
	}
}

// hitByProjectiles applies one point of damage per overlapping enemy
// projectile and reports whether t died.
func (w *World) hitByProjectiles(t *Tank, ids []int) bool {
	for _, pid := range ids {
		p := w.projectiles[pid]
		if p.Died || p.Owner == t.ID || !t.covers(p.Location) {
			continue
		}
		p.Died = true
		t.Health--
		if t.Health <= 0 {
			w.kill(t, p.Owner, FireMain)
			return true
		}
	}
	return false
}

func (w *World) collectPowerups(t *Tank, ids []int) {
	for _, pid := range ids {
		p := w.powerups[pid]
		if p.Died || !t.covers(p.Location) || t.powerups >= w.cfg.MaxPowerupsPerTank {
			continue
		}
		t.powerups++
		p.Died = true
		w.powerupCount--
		w.events = append(w.events, Event{Kind: EventPickup, Tick: w.tick, Actor: t.ID, Target: p.ID})
	}
}

// hitByBeams kills t outright if any enemy beam crosses it.
func (w *World) hitByBeams(t *Tank, ids []int) bool {
	for _, bid := range ids {
		b := w.beams[bid]
		if b.hits(t) {
			w.kill(t, b.Owner, FireAlt)
			return true
		}
	}
	return false
}

// kill zeroes t's health, starts its respawn timer and credits the shooter.
func (w *World) kill(t *Tank, shooter int, weapon FireMode) {
	t.Health = 0
	t.Died = true
	t.velocity = Vector2D{}
	t.respawnTimer = 1
	if s, ok := w.tanks[shooter]; ok {
		s.Score++
	}
	w.events = append(w.events, Event{Kind: EventKill, Tick: w.tick, Actor: shooter, Target: t.ID, Weapon: weapon})
}

// move commits t's velocity unless the destination is inside a wall, then
// wraps it at the world edge.
func (w *World) move(t *Tank) {
	if t.velocity.IsZero() {
		return
	}

	next := t.Location.Add(t.velocity)
	for _, wall := range w.walls {
		if wall.BlocksTank(next) {
			t.velocity = Vector2D{}
			return
		}
	}
	t.Location = next

	// Crossing an edge negates that coordinate. This mirrors the tank through
	// the origin's axis rather than translating it to the opposite edge.
	limit := float64(w.cfg.Size)/2 - TankSize/2
	if t.Location.X < -limit || t.Location.X > limit {
		t.Location.X = -t.Location.X
	}
	if t.Location.Y < -limit || t.Location.Y > limit {
		t.Location.Y = -t.Location.Y
	}
}

// spawnPowerups places one powerup once the spawn delay has elapsed and the
// world is under its cap.
func (w *World) spawnPowerups() {
	w.powerupFrames++
	if w.powerupCount >= w.cfg.MaxWorldPowerups || w.powerupFrames < w.cfg.PowerupSpawnDelay {
		return
	}

	p := &Powerup{
		ID:       w.powerupIDs.take(),
		Location: w.randomSpawn((*Wall).blocksPowerup),
	}
	w.powerups[p.ID] = p
	w.powerupFrames = 0
	w.powerupCount++
}
