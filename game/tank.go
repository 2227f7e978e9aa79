package game

// Tank is one player's entity. Exported fields are what clients see.
type Tank struct {
	ID           int      `json:"tank"`
	Name         string   `json:"name"`
	Location     Vector2D `json:"loc"`
	Orientation  Vector2D `json:"bdir"`
	Aim          Vector2D `json:"tdir"`
	Score        int      `json:"score"`
	Health       int      `json:"hp"`
	Died         bool     `json:"died"`
	Disconnected bool     `json:"dc"`
	Joined       bool     `json:"join"`

	velocity     Vector2D
	fireCooldown int // ticks since the last main shot
	respawnTimer int // > 0 while dead
	powerups     int // held beam charges
}

func newTank(id int, name string, loc Vector2D, c Config) *Tank {
	return &Tank{
		ID:           id,
		Name:         name,
		Location:     loc,
		Orientation:  Vector2D{X: 1},
		Aim:          Vector2D{X: 1},
		Health:       c.TankHealth,
		Joined:       true,
		fireCooldown: c.FireRate,
	}
}

// Respawning reports whether the tank is dead and waiting to come back.
func (t *Tank) Respawning() bool { return t.respawnTimer > 0 }

// Powerups returns the number of beam charges held.
func (t *Tank) Powerups() int { return t.powerups }

// covers reports whether p lies inside the tank's axis aligned hit square.
func (t *Tank) covers(p Vector2D) bool {
	const half = TankSize / 2
	return t.Location.X-half < p.X && p.X < t.Location.X+half &&
		t.Location.Y-half < p.Y && p.Y < t.Location.Y+half
}
