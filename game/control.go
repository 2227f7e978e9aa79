package game

import "encoding/json"

// Movement is the direction a client asks its tank to drive in.
type Movement string

const (
	MoveNone  Movement = "none"
	MoveUp    Movement = "up"
	MoveDown  Movement = "down"
	MoveLeft  Movement = "left"
	MoveRight Movement = "right"
)

// FireMode is the weapon a client asks to discharge this tick.
type FireMode string

const (
	FireNone FireMode = "none"
	FireMain FireMode = "main"
	FireAlt  FireMode = "alt"
)

// Control is one client intent. Missing, unknown or mistyped fields decode
// to none and a zero aim. A zero aim keeps the current turret direction
// instead of being applied verbatim, since a zero vector cannot steer a
// projectile or beam.
type Control struct {
	Moving Movement `json:"moving"`
	Fire   FireMode `json:"fire"`
	Aim    Vector2D `json:"tdir"`
}

// UnmarshalJSON decodes each field on its own so one bad field never
// discards the others. Only a frame that is not a JSON object is an error.
func (c *Control) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	*c = Control{Moving: MoveNone, Fire: FireNone}
	var m Movement
	if json.Unmarshal(fields["moving"], &m) == nil && m.valid() {
		c.Moving = m
	}
	var f FireMode
	if json.Unmarshal(fields["fire"], &f) == nil && f.valid() {
		c.Fire = f
	}
	var aim Vector2D
	if json.Unmarshal(fields["tdir"], &aim) == nil {
		c.Aim = aim
	}
	return nil
}

func (m Movement) valid() bool {
	switch m {
	case MoveNone, MoveUp, MoveDown, MoveLeft, MoveRight:
		return true
	}
	return false
}

func (f FireMode) valid() bool {
	switch f {
	case FireNone, FireMain, FireAlt:
		return true
	}
	return false
}

// direction returns the unit vector for m, or false when the tank should stop.
func (m Movement) direction() (Vector2D, bool) {
	switch m {
	case MoveUp:
		return Vector2D{Y: -1}, true
	case MoveDown:
		return Vector2D{Y: 1}, true
	case MoveLeft:
		return Vector2D{X: -1}, true
	case MoveRight:
		return Vector2D{X: 1}, true
	}
	return Vector2D{}, false
}
