package network

import "bytes"

// Delimiter terminates every frame on the wire.
const Delimiter = '\n'

// SplitFrames returns every complete frame in buf in arrival order, without
// delimiters, and the number of bytes they occupy. A trailing fragment with
// no delimiter is not part of the result.
func SplitFrames(buf []byte) (frames [][]byte, n int) {
	for {
		i := bytes.IndexByte(buf[n:], Delimiter)
		if i < 0 {
			return frames, n
		}
		frames = append(frames, buf[n:n+i])
		n += i + 1
	}
}

// TakeFrames removes every complete frame from the receive buffer and
// returns them as strings, keeping any partial tail for the next read.
func (c *Conn) TakeFrames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	frames, n := SplitFrames(c.buf)
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = string(f)
	}
	c.buf = c.buf[n:]
	return out
}

// Frame returns s terminated by the delimiter, adding it when missing.
func Frame(s string) []byte {
	b := []byte(s)
	if len(b) == 0 || b[len(b)-1] != Delimiter {
		b = append(b, Delimiter)
	}
	return b
}
