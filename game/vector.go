package game

import "math"

// Vector2D is a point or direction in world coordinates.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector2D) Add(o Vector2D) Vector2D { return Vector2D{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vector2D) Sub(o Vector2D) Vector2D { return Vector2D{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vector2D) Scale(f float64) Vector2D { return Vector2D{X: v.X * f, Y: v.Y * f} }

func (v Vector2D) Dot(o Vector2D) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vector2D) Length() float64 { return math.Hypot(v.X, v.Y) }

func (v Vector2D) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector pointing along v. The zero vector stays zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Length()
	if l == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / l, Y: v.Y / l}
}
