package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/exception"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// ExceptionResult represents the outcome of filing a schedule exception.
// When Violations is non-empty the draft was rejected and nothing was
// persisted.
type ExceptionResult struct {
	Exception  *model.ScheduleException
	Violations []model.Violation
}

// AddException validates an exception draft and files it as pending for the
// worker. now anchors the not-in-the-past check and the created timestamp.
func AddException(ctx context.Context, workers db.WorkerStore, exceptions db.ExceptionStore, logger *zap.Logger, workerID string, draft model.ExceptionDraft, now time.Time) (*ExceptionResult, error) {
	logger.Info("Filing schedule exception",
		zap.String("worker_id", workerID),
		zap.String("type", draft.Type))

	logger.Debug("Fetching worker")
	worker, err := workers.GetWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}

	ex, violations := exception.NewFromDraft(workerID, draft, now)
	if len(violations) > 0 {
		logger.Info("Exception draft rejected",
			zap.String("worker_id", workerID),
			zap.Int("violations", len(violations)))
		return &ExceptionResult{Violations: violations}, nil
	}

	row := exceptionRow(ex)
	if err := exceptions.InsertException(ctx, &row); err != nil {
		return nil, fmt.Errorf("failed to insert exception: %w", err)
	}

	logger.Info("Exception filed",
		zap.String("exception_id", ex.ID),
		zap.String("worker_id", workerID),
		zap.String("worker_name", worker.Name),
		zap.String("type", string(ex.Type)),
		zap.String("start_date", ex.StartDate.Format("2006-01-02")),
		zap.String("end_date", ex.EndDate.Format("2006-01-02")),
		zap.Bool("full_day", ex.FullDay))

	return &ExceptionResult{Exception: &ex}, nil
}
