// Package events publishes grievance lifecycle events to the message bus
package events

import (
	"context"

	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
)

// Publisher publishes grievance events. Delivery is best effort; the
// analytics counters tolerate missed events, and a bus outage must never
// block a citizen filing a complaint.
type Publisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewPublisher creates a grievance event publisher on the grievance events exchange
func NewPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*Publisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeGrievanceEvents, "grievance-service", log)
	if err != nil {
		return nil, err
	}
	return &Publisher{publisher: pub, logger: log}, nil
}

// GrievanceCreated publishes a grievance.created event
func (p *Publisher) GrievanceCreated(ctx context.Context, event *messaging.GrievanceCreatedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventGrievanceCreated, event); err != nil {
		p.logger.Warn().Err(err).Str("grievance_id", event.GrievanceID).Msg("failed to publish grievance.created")
	}
}

// StatusChanged publishes a grievance.status.changed event
func (p *Publisher) StatusChanged(ctx context.Context, event *messaging.GrievanceStatusChangedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventGrievanceStatusChanged, event); err != nil {
		p.logger.Warn().Err(err).Str("grievance_id", event.GrievanceID).Msg("failed to publish grievance.status.changed")
	}
}

// Assigned publishes a grievance.assigned event
func (p *Publisher) Assigned(ctx context.Context, event *messaging.GrievanceAssignedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventGrievanceAssigned, event); err != nil {
		p.logger.Warn().Err(err).Str("grievance_id", event.GrievanceID).Msg("failed to publish grievance.assigned")
	}
}

// CommentAdded publishes a grievance.comment.added event
func (p *Publisher) CommentAdded(ctx context.Context, event *messaging.GrievanceCommentAddedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventGrievanceCommentAdded, event); err != nil {
		p.logger.Warn().Err(err).Str("grievance_id", event.GrievanceID).Msg("failed to publish grievance.comment.added")
	}
}

// AnalysisCompleted publishes a grievance.analysis.completed event
func (p *Publisher) AnalysisCompleted(ctx context.Context, event *messaging.GrievanceAnalysisCompletedEvent) {
	if err := p.publisher.Publish(ctx, messaging.EventGrievanceAnalysisCompleted, event); err != nil {
		p.logger.Warn().Err(err).Str("grievance_id", event.GrievanceID).Msg("failed to publish grievance.analysis.completed")
	}
}
