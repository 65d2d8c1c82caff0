package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// GetWorkerCommitments retrieves all commitments booked for one worker
func (d *DB) GetWorkerCommitments(ctx context.Context, workerID string) ([]db.Commitment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, worker_id, job_id, start_at, end_at, note
		FROM commitments
		WHERE worker_id = $1
		ORDER BY start_at
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return scanCommitments(rows)
}

// GetCommitmentsBetween retrieves every commitment overlapping the half-open
// window [start, end)
func (d *DB) GetCommitmentsBetween(ctx context.Context, start, end time.Time) ([]db.Commitment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, worker_id, job_id, start_at, end_at, note
		FROM commitments
		WHERE start_at < $2 AND end_at > $1
		ORDER BY start_at, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments between %s and %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
	}
	defer rows.Close()

	return scanCommitments(rows)
}

func scanCommitments(rows pgx.Rows) ([]db.Commitment, error) {
	var commitments []db.Commitment
	for rows.Next() {
		var c db.Commitment
		if err := rows.Scan(&c.ID, &c.WorkerID, &c.JobID, &c.StartAt, &c.EndAt, &c.Note); err != nil {
			return nil, fmt.Errorf("failed to scan commitment: %w", err)
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commitments: %w", err)
	}

	return commitments, nil
}
