package events

import (
	"context"

	appinventory "github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/pkg/logger"
)

var _ appinventory.EventPublisher = (*LogPublisher)(nil)

// LogPublisher is the default domain-event observer: it writes each event
// as a structured log line. Always safe, never fails the mutation path.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher builds the publisher.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish logs each event with its name and payload.
func (p *LogPublisher) Publish(_ context.Context, events ...inventory.Event) {
	for _, ev := range events {
		p.log.Info().
			Str("event", ev.EventName()).
			Interface("payload", ev).
			Msg("domain event")
	}
}
