// Package local provides the event publisher used in local mode, where no
// message bus exists. Events are logged so the feed is still observable.
package local

import (
	"context"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/events"

	"go.uber.org/zap"
)

// Publisher implements ports.EventPublisher by writing events to the log.
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a new logging publisher
func NewPublisher(logger *zap.Logger) ports.EventPublisher {
	return &Publisher{logger: logger}
}

// Publish logs a single event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("timestamp", event.GetTimestamp()))
	return nil
}

// PublishBatch logs multiple events
func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
