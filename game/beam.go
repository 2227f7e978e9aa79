package game

import "math"

// Beam is an instant hit-scan shot. It exists for the single tick it is fired in.
type Beam struct {
	ID        int      `json:"beam"`
	Origin    Vector2D `json:"org"`
	Direction Vector2D `json:"dir"`
	Owner     int      `json:"owner"`
}

// hits reports whether the beam's ray passes through t. Tanks are treated as
// circles of radius TankSize.
func (b *Beam) hits(t *Tank) bool {
	if b.Owner == t.ID {
		return false
	}
	return rayIntersectsCircle(b.Origin, b.Direction, t.Location, TankSize)
}

// rayIntersectsCircle solves |O + tD - C|^2 = r^2 for t. The ray hits when
// the discriminant is non-negative and both roots are positive, so a circle
// containing or behind the origin is a miss.
func rayIntersectsCircle(origin, dir, center Vector2D, r float64) bool {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - r*r

	disc := b*b - 4*a*c
	if disc < 0 {
		return false
	}
	// Only the signs matter, so the division by 2a is skipped.
	sq := math.Sqrt(disc)
	return -b+sq > 0 && -b-sq > 0
}
