package i

import (
	"github.com/beka-birhanu/vinom-arena-server/network"
)

// GameServer defines the interface for the arena tick driver.
type GameServer interface {
	// Start runs the fixed-period tick loop until Stop is called.
	Start()

	// Stop ends the tick loop and closes every player connection.
	Stop()

	// Tick performs one world step and one broadcast.
	Tick()

	// HandleConnection takes ownership of a freshly accepted connection.
	HandleConnection(c *network.Conn)
}
