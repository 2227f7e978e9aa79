package client

import (
	"testing"

	"github.com/beka-birhanu/vinom-arena-server/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, frame string) game.Frame {
	t.Helper()
	f, err := game.DecodeFrame([]byte(frame))
	require.NoError(t, err)
	return f
}

func TestViewAppliesFrames(t *testing.T) {
	v := NewView()
	assert.Equal(t, -1, v.ID())

	v.Apply(decode(t, `{"wall":0,"p1":{"x":-100,"y":0},"p2":{"x":100,"y":0}}`))
	v.Apply(decode(t, `{"tank":1,"name":"bob","loc":{"x":5,"y":6},"hp":3}`))
	v.Apply(decode(t, `{"proj":4,"loc":{"x":1,"y":1},"dir":{"x":1,"y":0},"owner":1}`))
	v.Apply(decode(t, `{"power":2,"loc":{"x":9,"y":9}}`))
	v.Apply(decode(t, `{"beam":0,"org":{"x":0,"y":0},"dir":{"x":0,"y":1},"owner":1}`))

	require.Len(t, v.Walls(), 1)
	require.Len(t, v.Tanks(), 1)
	assert.Equal(t, "bob", v.Tanks()[0].Name)
	assert.Len(t, v.Projectiles(), 1)
	assert.Len(t, v.Powerups(), 1)

	beams := v.TakeBeams()
	require.Len(t, beams, 1)
	assert.Equal(t, 1, beams[0].Owner)
	assert.Empty(t, v.TakeBeams())
}

func TestViewRemovesGoneEntities(t *testing.T) {
	v := NewView()
	v.Apply(decode(t, `{"tank":1,"name":"bob"}`))
	v.Apply(decode(t, `{"proj":4,"owner":1}`))
	v.Apply(decode(t, `{"power":2}`))

	v.Apply(decode(t, `{"tank":1,"name":"bob","dc":true,"hp":0}`))
	v.Apply(decode(t, `{"proj":4,"owner":1,"died":true}`))
	v.Apply(decode(t, `{"power":2,"died":true}`))

	assert.Empty(t, v.Tanks())
	assert.Empty(t, v.Projectiles())
	assert.Empty(t, v.Powerups())
}

func TestViewMe(t *testing.T) {
	v := NewView()
	v.Apply(decode(t, `{"tank":3,"name":"me"}`))

	_, ok := v.Me()
	assert.False(t, ok)

	v.setIdentity(3)
	me, ok := v.Me()
	require.True(t, ok)
	assert.Equal(t, "me", me.Name)
}
