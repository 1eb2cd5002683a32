// Package consumers keeps the analytics counters in sync with grievance
// events from the message bus.
package consumers

import (
	"context"

	"github.com/jansunwai/jansunwai-backend/internal/analytics/repository"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
)

// GrievanceEventConsumer consumes grievance events
type GrievanceEventConsumer struct {
	consumer *messaging.Consumer
	repo     *repository.AnalyticsRepository
	logger   *logger.Logger
}

// NewGrievanceEventConsumer creates a consumer bound to the grievance
// events exchange.
func NewGrievanceEventConsumer(rmq *messaging.RabbitMQ, repo *repository.AnalyticsRepository, log *logger.Logger) (*GrievanceEventConsumer, error) {
	consumer, err := messaging.NewConsumer(rmq, "analytics-worker.grievance-events", log)
	if err != nil {
		return nil, err
	}

	if err := consumer.Subscribe(messaging.ExchangeGrievanceEvents, "grievance.#"); err != nil {
		return nil, err
	}

	c := &GrievanceEventConsumer{
		consumer: consumer,
		repo:     repo,
		logger:   log,
	}

	consumer.RegisterHandler(messaging.EventGrievanceCreated, c.handleGrievanceCreated)
	consumer.RegisterHandler(messaging.EventGrievanceStatusChanged, c.handleStatusChanged)
	consumer.RegisterHandler(messaging.EventGrievanceAnalysisCompleted, c.handleAnalysisCompleted)

	return c, nil
}

// Start starts consuming messages
func (c *GrievanceEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

func (c *GrievanceEventConsumer) handleGrievanceCreated(ctx context.Context, event *messaging.Event) error {
	var data messaging.GrievanceCreatedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("grievance_id", data.GrievanceID).
		Str("department", data.Department).
		Str("urgency", data.Urgency).
		Msg("received grievance created event")

	return c.repo.RecordCreated(ctx, event.Timestamp, data.SentimentScore, data.Urgency, data.OriginalLanguage, data.Department)
}

func (c *GrievanceEventConsumer) handleStatusChanged(ctx context.Context, event *messaging.Event) error {
	var data messaging.GrievanceStatusChangedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	c.logger.Info().
		Str("grievance_id", data.GrievanceID).
		Str("new_status", data.NewStatus).
		Msg("received grievance status changed event")

	return c.repo.RecordStatusChange(ctx, event.Timestamp, data.OldStatus, data.NewStatus, data.Department)
}

func (c *GrievanceEventConsumer) handleAnalysisCompleted(ctx context.Context, event *messaging.Event) error {
	var data messaging.GrievanceAnalysisCompletedEvent
	if err := event.UnmarshalData(&data); err != nil {
		return err
	}

	if data.Degraded {
		c.logger.Warn().
			Str("grievance_id", data.GrievanceID).
			Str("error", data.Error).
			Msg("grievance analysis was degraded")
	}
	return nil
}
