package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/game"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to the event kind to form the subject.
const SubjectPrefix = "arena.events."

// Subject returns the subject events of kind k are published on.
func Subject(k game.EventKind) string {
	return SubjectPrefix + string(k)
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher sends match events to NATS. Core NATS publishing is buffered by
// the client, so Publish never blocks the tick; failures are logged and the
// event dropped.
type Publisher struct {
	nc     conn
	logger general_i.Logger
}

// Connect dials the NATS server at url.
func Connect(url string, logger general_i.Logger) (*Publisher, error) {
	nc, err := nats.Connect(
		url,
		nats.Name("arena-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warning(fmt.Sprintf("disconnected from nats: %s", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(fmt.Sprintf("reconnected to nats at %s", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) Publish(e game.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		p.logger.Error(fmt.Sprintf("encoding %s event: %s", e.Kind, err))
		return
	}
	if err := p.nc.Publish(Subject(e.Kind), data); err != nil {
		p.logger.Warning(fmt.Sprintf("publishing %s event: %s", e.Kind, err))
	}
}

// Close flushes pending events and closes the connection.
func (p *Publisher) Close() error {
	return p.nc.Drain()
}
