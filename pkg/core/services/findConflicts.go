package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/conflict"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// ConflictReport represents everything blocking a worker from a window
type ConflictReport struct {
	WorkerID   string
	WorkerName string
	Window     model.TimeRange
	Conflicts  []conflict.Conflict
}

// FindConflicts checks one worker's calendar against a proposed assignment
// window. An empty report means the window is clear of exceptions and
// commitments; whether it sits inside the worker's declared hours is a
// separate question answered during scoring.
func FindConflicts(ctx context.Context, workers db.WorkerStore, exceptions db.ExceptionStore, commitments db.CommitmentStore, logger *zap.Logger, workerID string, window model.TimeRange) (*ConflictReport, error) {
	logger.Info("Checking for conflicts",
		zap.String("worker_id", workerID),
		zap.Time("window_start", window.Start),
		zap.Time("window_end", window.End))

	logger.Debug("Fetching worker")
	workerRow, err := workers.GetWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch worker: %w", err)
	}

	exceptionRows, err := exceptions.GetWorkerExceptions(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exceptions: %w", err)
	}

	commitmentRows, err := commitments.GetWorkerCommitments(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commitments: %w", err)
	}

	worker := convertWorker(*workerRow, nil, exceptionRows, nil)
	found, err := conflict.Find(&worker, window, convertCommitments(commitmentRows))
	if err != nil {
		return nil, fmt.Errorf("failed to check conflicts: %w", err)
	}

	logger.Info("Conflict check complete",
		zap.String("worker_id", workerID),
		zap.String("worker_name", workerRow.Name),
		zap.Int("conflicts", len(found)))

	return &ConflictReport{
		WorkerID:   workerRow.ID,
		WorkerName: workerRow.Name,
		Window:     window,
		Conflicts:  found,
	}, nil
}
