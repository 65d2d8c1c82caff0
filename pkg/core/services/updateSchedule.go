package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/core/schedule"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// ScheduleUpdateResult represents the outcome of a schedule update. When
// Violations is non-empty the draft was rejected and nothing was persisted;
// that is a successful call, not an error.
type ScheduleUpdateResult struct {
	WorkerID   string
	WorkerName string
	Schedule   model.WeeklySchedule
	Violations []model.Violation
}

// UpdateSchedule validates a weekly schedule draft and replaces the worker's
// recurring schedule with it. The replace is guarded by the schedule version
// read here, so two dispatchers editing the same worker cannot silently
// overwrite each other.
func UpdateSchedule(ctx context.Context, store db.WorkerStore, logger *zap.Logger, workerID string, draft model.WeeklyScheduleDraft) (*ScheduleUpdateResult, error) {
	logger.Info("Updating weekly schedule", zap.String("worker_id", workerID))

	logger.Debug("Fetching worker")
	worker, err := store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}

	normalized, violations := schedule.ValidateAndNormalize(draft)
	if len(violations) > 0 {
		logger.Info("Schedule draft rejected",
			zap.String("worker_id", workerID),
			zap.Int("violations", len(violations)))
		return &ScheduleUpdateResult{
			WorkerID:   worker.ID,
			WorkerName: worker.Name,
			Violations: violations,
		}, nil
	}

	logger.Debug("Persisting schedule",
		zap.String("worker_id", workerID),
		zap.Int("schedule_version", worker.ScheduleVersion),
		zap.Int("net_week_minutes", normalized.NetWeekMinutes()))

	rows := scheduleRows(workerID, normalized)
	if err := store.ReplaceDaySchedules(ctx, workerID, worker.ScheduleVersion, rows); err != nil {
		return nil, fmt.Errorf("failed to replace schedule: %w", err)
	}

	logger.Info("Schedule updated",
		zap.String("worker_id", workerID),
		zap.String("worker_name", worker.Name),
		zap.Float64("net_week_hours", float64(normalized.NetWeekMinutes())/60))

	return &ScheduleUpdateResult{
		WorkerID:   worker.ID,
		WorkerName: worker.Name,
		Schedule:   normalized,
	}, nil
}
