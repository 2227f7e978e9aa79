package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	tank := &Tank{
		ID: 3, Name: "ada", Location: Vector2D{X: 1.5, Y: -2}, Orientation: Vector2D{Y: -1},
		Aim: Vector2D{X: 0.6, Y: 0.8}, Score: 4, Health: 2, Died: true, Disconnected: true, Joined: true,
	}
	proj := &Projectile{ID: 11, Location: Vector2D{X: 10, Y: 20}, Direction: Vector2D{X: -1}, Died: true, Owner: 3}
	power := &Powerup{ID: 5, Location: Vector2D{X: -7, Y: 8}}
	beam := &Beam{ID: 2, Origin: Vector2D{X: 1, Y: 1}, Direction: Vector2D{X: 0, Y: 1}, Owner: 0}
	wall := &Wall{ID: 0, P1: Vector2D{X: -100}, P2: Vector2D{X: 100}}

	tests := []struct {
		name string
		v    any
		want Frame
	}{
		{name: "tank", v: tank, want: Frame{Kind: KindTank, Tank: tank}},
		{name: "projectile", v: proj, want: Frame{Kind: KindProjectile, Projectile: proj}},
		{name: "powerup", v: power, want: Frame{Kind: KindPowerup, Powerup: power}},
		{name: "beam", v: beam, want: Frame{Kind: KindBeam, Beam: beam}},
		{name: "wall", v: wall, want: Frame{Kind: KindWall, Wall: wall}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := AppendFrame(nil, tt.v)
			require.NoError(t, err)
			require.Equal(t, byte('\n'), b[len(b)-1])

			got, err := DecodeFrame(b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFrameRejectsUnknown(t *testing.T) {
	for _, in := range []string{
		`{"moving":"up","fire":"none","tdir":{"x":1,"y":0}}`,
		`{"tank":1,"proj":2}`,
		`not json`,
		"  \n",
	} {
		_, err := DecodeFrame([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestControlFrames(t *testing.T) {
	c := Control{Moving: MoveRight, Fire: FireMain, Aim: Vector2D{X: 0, Y: -1}}
	b := EncodeControl(c)
	assert.Equal(t, `{"moving":"right","fire":"main","tdir":{"x":0,"y":-1}}`+"\n", string(b))

	got, err := DecodeControl(b)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	got, err = DecodeControl([]byte(`{"fire":"alt"}`))
	require.NoError(t, err)
	assert.Equal(t, Control{Moving: MoveNone, Fire: FireAlt}, got)

	_, err = DecodeControl([]byte(`{"moving":`))
	assert.Error(t, err)
}

func TestControlFieldsDecodeIndependently(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Control
	}{
		{
			name: "mistyped moving",
			in:   `{"moving":7,"fire":"main","tdir":{"x":1,"y":0}}`,
			want: Control{Moving: MoveNone, Fire: FireMain, Aim: Vector2D{X: 1}},
		},
		{
			name: "unknown moving and fire",
			in:   `{"moving":"sideways","fire":"nuke","tdir":{"x":0,"y":1}}`,
			want: Control{Moving: MoveNone, Fire: FireNone, Aim: Vector2D{Y: 1}},
		},
		{
			name: "mistyped aim",
			in:   `{"moving":"up","fire":"alt","tdir":"x"}`,
			want: Control{Moving: MoveUp, Fire: FireAlt},
		},
		{
			name: "mistyped aim component",
			in:   `{"moving":"down","tdir":{"x":"a","y":1}}`,
			want: Control{Moving: MoveDown, Fire: FireNone},
		},
		{
			name: "nulls",
			in:   `{"moving":null,"fire":null,"tdir":null}`,
			want: Control{Moving: MoveNone, Fire: FireNone},
		},
		{
			name: "empty object",
			in:   `{}`,
			want: Control{Moving: MoveNone, Fire: FireNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeControl([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{`[1,2]`, `"up"`, `7`} {
		_, err := DecodeControl([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestIntFrames(t *testing.T) {
	assert.Equal(t, "42\n", string(EncodeInt(42)))

	n, err := DecodeInt([]byte(" 1000\n"))
	require.NoError(t, err)
	assert.Equal(t, 1000, n)

	_, err = DecodeInt([]byte("{}"))
	assert.Error(t, err)
}

func TestRayIntersectsCircle(t *testing.T) {
	tests := []struct {
		name   string
		origin Vector2D
		dir    Vector2D
		center Vector2D
		want   bool
	}{
		{name: "ahead", dir: Vector2D{X: 1}, center: Vector2D{X: 300}, want: true},
		{name: "behind", dir: Vector2D{X: 1}, center: Vector2D{X: -300}, want: false},
		{name: "off axis", dir: Vector2D{X: 1}, center: Vector2D{X: 300, Y: 200}, want: false},
		{name: "grazing inside radius", dir: Vector2D{Y: -1}, center: Vector2D{X: 50, Y: -400}, want: true},
		{name: "origin inside circle", dir: Vector2D{X: 1}, center: Vector2D{X: 10}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rayIntersectsCircle(tt.origin, tt.dir, tt.center, TankSize))
		})
	}
}
