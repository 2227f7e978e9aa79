package game

// Projectile is a main-fire shot travelling in a straight line.
type Projectile struct {
	ID        int      `json:"proj"`
	Location  Vector2D `json:"loc"`
	Direction Vector2D `json:"dir"`
	Died      bool     `json:"died"`
	Owner     int      `json:"owner"`
}
