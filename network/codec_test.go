package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFrames(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		frames []string
		rest   string
	}{
		{name: "empty", in: "", rest: ""},
		{name: "fragment only", in: `{"tank":1`, rest: `{"tank":1`},
		{name: "single", in: "7\n", frames: []string{"7"}},
		{name: "many with tail", in: "7\n1000\n{\"wall\":0", frames: []string{"7", "1000"}, rest: "{\"wall\":0"},
		{name: "empty frame", in: "\n\nx\n", frames: []string{"", "", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, n := SplitFrames([]byte(tt.in))
			got := make([]string, 0, len(frames))
			for _, f := range frames {
				got = append(got, string(f))
			}
			assert.Equal(t, len(tt.frames), len(got))
			for i := range tt.frames {
				assert.Equal(t, tt.frames[i], got[i])
			}
			assert.Equal(t, tt.rest, tt.in[n:])
		})
	}
}

func TestTakeFramesKeepsTailAcrossReads(t *testing.T) {
	c := newPending()

	c.buf = append(c.buf, "ali"...)
	assert.Empty(t, c.TakeFrames())

	c.buf = append(c.buf, "ce\n{\"moving\":"...)
	assert.Equal(t, []string{"alice"}, c.TakeFrames())

	c.buf = append(c.buf, "\"up\"}\n"...)
	assert.Equal(t, []string{`{"moving":"up"}`}, c.TakeFrames())
	assert.Empty(t, c.Data())
}

func TestFrame(t *testing.T) {
	assert.Equal(t, []byte("bob\n"), Frame("bob"))
	assert.Equal(t, []byte("bob\n"), Frame("bob\n"))
	assert.Equal(t, []byte("\n"), Frame(""))
}
