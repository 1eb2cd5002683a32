// Package events publishes user lifecycle events to the message bus
package events

import (
	"context"

	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
)

// Publisher publishes user events. Event delivery is best effort; a bus
// outage must never fail the request that triggered the event.
type Publisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewPublisher creates a user event publisher on the user events exchange
func NewPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*Publisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeUserEvents, "grievance-service", log)
	if err != nil {
		return nil, err
	}
	return &Publisher{publisher: pub, logger: log}, nil
}

// UserRegistered publishes a user.registered event
func (p *Publisher) UserRegistered(ctx context.Context, event *messaging.UserRegisteredEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventUserRegistered, event); err != nil {
		p.logger.Warn().Err(err).Str("user_id", event.UserID).Msg("failed to publish user.registered")
	}
}

// UserUpdated publishes a user.updated event
func (p *Publisher) UserUpdated(ctx context.Context, event *messaging.UserUpdatedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventUserUpdated, event); err != nil {
		p.logger.Warn().Err(err).Str("user_id", event.UserID).Msg("failed to publish user.updated")
	}
}
