package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/exception"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
	"github.com/crewdeckhq/crewdeck/pkg/mailer"
)

// NotificationPublisher queues outbound notifications. A nil publisher
// disables notifications without changing the decision flow.
type NotificationPublisher interface {
	Publish(ctx context.Context, message mailer.Message) error
}

// DecisionResult represents the outcome of deciding a schedule exception
type DecisionResult struct {
	Exception  *model.ScheduleException
	WorkerName string
	Notified   bool
}

// DecideException moves a pending exception to approved or rejected and
// queues a notification to the worker. Approved and rejected are terminal:
// re-deciding returns exception.ErrFinalStatus, and a concurrent decision
// surfaces as db.ErrStale from the guarded update.
func DecideException(ctx context.Context, workers db.WorkerStore, exceptions db.ExceptionStore, publisher NotificationPublisher, logger *zap.Logger, exceptionID string, decision model.ExceptionStatus) (*DecisionResult, error) {
	logger.Info("Deciding schedule exception",
		zap.String("exception_id", exceptionID),
		zap.String("decision", string(decision)))

	logger.Debug("Fetching exception")
	row, err := exceptions.GetException(ctx, exceptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exception: %w", err)
	}

	ex := convertException(*row)
	if err := exception.Decide(&ex, decision); err != nil {
		return nil, err
	}

	if err := exceptions.UpdateExceptionStatus(ctx, exceptionID, string(decision)); err != nil {
		return nil, fmt.Errorf("failed to persist decision: %w", err)
	}

	logger.Debug("Fetching worker", zap.String("worker_id", ex.WorkerID))
	worker, err := workers.GetWorker(ctx, ex.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}

	result := &DecisionResult{Exception: &ex, WorkerName: worker.Name}

	// The decision is already durable at this point. Worker notification is
	// best effort: a broker outage must not look like a failed decision.
	if publisher != nil {
		message := mailer.Message{
			Type: mailer.TypeExceptionDecision,
			To:   worker.Email,
			Data: mailer.ExceptionDecisionData{
				WorkerName: worker.Name,
				Title:      ex.Title,
				Type:       string(ex.Type),
				StartDate:  ex.StartDate.Format("2006-01-02"),
				EndDate:    ex.EndDate.Format("2006-01-02"),
				Status:     string(ex.Status),
			},
		}
		if err := publisher.Publish(ctx, message); err != nil {
			logger.Warn("Failed to queue decision notification",
				zap.String("exception_id", exceptionID),
				zap.String("worker_email", worker.Email),
				zap.Error(err))
		} else {
			result.Notified = true
		}
	}

	logger.Info("Exception decided",
		zap.String("exception_id", exceptionID),
		zap.String("worker_name", worker.Name),
		zap.String("status", string(ex.Status)),
		zap.Bool("notified", result.Notified))

	return result, nil
}
