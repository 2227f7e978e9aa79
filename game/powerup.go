package game

// Powerup grants one beam charge to the tank that drives over it.
type Powerup struct {
	ID       int      `json:"power"`
	Location Vector2D `json:"loc"`
	Died     bool     `json:"died"`
}
