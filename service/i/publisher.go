package i

import (
	"github.com/beka-birhanu/vinom-arena-server/game"
)

// EventPublisher forwards match events outside the process. Publish must not
// block the tick.
type EventPublisher interface {
	Publish(game.Event)
}

// SnapshotSink receives every tick's snapshot after players have been sent
// theirs.
type SnapshotSink interface {
	Broadcast(snapshot []byte)
}
