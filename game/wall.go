package game

import "math"

// Wall is a static segment. Its collision volume is the segment's bounding box
// grown by half the wall thickness.
type Wall struct {
	ID int      `json:"wall"`
	P1 Vector2D `json:"p1"`
	P2 Vector2D `json:"p2"`
}

// blocks reports whether p lies inside the wall's box expanded by margin
// beyond the wall's own half thickness.
func (w *Wall) blocks(p Vector2D, margin float64) bool {
	e := WallThickness/2 + margin
	left := math.Min(w.P1.X, w.P2.X) - e
	right := math.Max(w.P1.X, w.P2.X) + e
	top := math.Min(w.P1.Y, w.P2.Y) - e
	bottom := math.Max(w.P1.Y, w.P2.Y) + e
	return left < p.X && p.X < right && top < p.Y && p.Y < bottom
}

// BlocksTank reports whether a tank centred at p would overlap the wall.
func (w *Wall) BlocksTank(p Vector2D) bool { return w.blocks(p, TankSize/2) }

func (w *Wall) blocksProjectile(p Vector2D) bool { return w.blocks(p, ProjectileSize/4) }

func (w *Wall) blocksPowerup(p Vector2D) bool { return w.blocks(p, PowerupSize/2) }
