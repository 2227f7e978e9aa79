package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind tags a state frame with the entity it carries. On the wire the tag is
// the name of the frame's id field.
type Kind string

const (
	KindTank       Kind = "tank"
	KindProjectile Kind = "proj"
	KindPowerup    Kind = "power"
	KindBeam       Kind = "beam"
	KindWall       Kind = "wall"
)

// Wire errors.
var (
	ErrUnknownFrame = errors.New("frame does not carry a known entity")
	ErrEmptyFrame   = errors.New("empty frame")
)

const delimiter = '\n'

// Frame is one decoded state frame. Exactly the field matching Kind is set.
type Frame struct {
	Kind       Kind
	Tank       *Tank
	Projectile *Projectile
	Powerup    *Powerup
	Beam       *Beam
	Wall       *Wall
}

// kindTags is decoded once to learn which entity a frame holds.
type kindTags struct {
	Tank  *int `json:"tank"`
	Proj  *int `json:"proj"`
	Power *int `json:"power"`
	Beam  *int `json:"beam"`
	Wall  *int `json:"wall"`
}

func (t kindTags) kind() (Kind, error) {
	var kinds []Kind
	for _, c := range []struct {
		id   *int
		kind Kind
	}{
		{t.Tank, KindTank},
		{t.Proj, KindProjectile},
		{t.Power, KindPowerup},
		{t.Beam, KindBeam},
		{t.Wall, KindWall},
	} {
		if c.id != nil {
			kinds = append(kinds, c.kind)
		}
	}
	if len(kinds) != 1 {
		return "", ErrUnknownFrame
	}
	return kinds[0], nil
}

// AppendFrame appends v as one JSON frame terminated by the delimiter.
func AppendFrame(dst []byte, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return dst, err
	}
	dst = append(dst, b...)
	return append(dst, delimiter), nil
}

// DecodeFrame parses one state or wall frame, with or without its delimiter.
func DecodeFrame(b []byte) (Frame, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Frame{}, ErrEmptyFrame
	}

	var tags kindTags
	if err := json.Unmarshal(b, &tags); err != nil {
		return Frame{}, fmt.Errorf("decoding frame: %w", err)
	}
	kind, err := tags.kind()
	if err != nil {
		return Frame{}, err
	}

	f := Frame{Kind: kind}
	var dst any
	switch kind {
	case KindTank:
		f.Tank = &Tank{}
		dst = f.Tank
	case KindProjectile:
		f.Projectile = &Projectile{}
		dst = f.Projectile
	case KindPowerup:
		f.Powerup = &Powerup{}
		dst = f.Powerup
	case KindBeam:
		f.Beam = &Beam{}
		dst = f.Beam
	case KindWall:
		f.Wall = &Wall{}
		dst = f.Wall
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return Frame{}, fmt.Errorf("decoding %s frame: %w", kind, err)
	}
	return f, nil
}

// EncodeInt renders a bare integer frame, as used for the handshake.
func EncodeInt(n int) []byte {
	return append(strconv.AppendInt(nil, int64(n), 10), delimiter)
}

// DecodeInt parses a bare integer frame.
func DecodeInt(b []byte) (int, error) {
	return strconv.Atoi(string(bytes.TrimSpace(b)))
}

// EncodeControl renders a client intent frame.
func EncodeControl(c Control) []byte {
	b, _ := AppendFrame(nil, c)
	return b
}

// DecodeControl parses a client intent frame. Missing fields decode to no-ops.
func DecodeControl(b []byte) (Control, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Control{}, ErrEmptyFrame
	}
	var c Control
	if err := json.Unmarshal(b, &c); err != nil {
		return Control{}, fmt.Errorf("decoding control: %w", err)
	}
	return c, nil
}
