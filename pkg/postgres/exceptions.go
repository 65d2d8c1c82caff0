package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

const exceptionColumns = `id, worker_id, type, title, start_date, end_date,
	full_day, start_minutes, end_minutes, status, notes, created_at`

// GetException retrieves a single schedule exception record by ID
func (d *DB) GetException(ctx context.Context, exceptionID string) (*db.ScheduleException, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+exceptionColumns+`
		FROM schedule_exceptions
		WHERE id = $1
	`, exceptionID)

	ex, err := scanException(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("exception %s: %w", exceptionID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query exception %s: %w", exceptionID, err)
	}

	return ex, nil
}

// GetWorkerExceptions retrieves all schedule exceptions filed for one worker
func (d *DB) GetWorkerExceptions(ctx context.Context, workerID string) ([]db.ScheduleException, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+exceptionColumns+`
		FROM schedule_exceptions
		WHERE worker_id = $1
		ORDER BY start_date, created_at
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// GetAllExceptions retrieves every schedule exception record
func (d *DB) GetAllExceptions(ctx context.Context) ([]db.ScheduleException, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+exceptionColumns+`
		FROM schedule_exceptions
		ORDER BY worker_id, start_date, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query exceptions: %w", err)
	}
	defer rows.Close()

	return scanExceptions(rows)
}

// InsertException inserts a new schedule exception record
func (d *DB) InsertException(ctx context.Context, exception *db.ScheduleException) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO schedule_exceptions
			(id, worker_id, type, title, start_date, end_date,
			 full_day, start_minutes, end_minutes, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, exception.ID, exception.WorkerID, exception.Type, exception.Title,
		exception.StartDate, exception.EndDate, exception.FullDay,
		exception.StartMinutes, exception.EndMinutes, exception.Status,
		exception.Notes, exception.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert exception %s: %w", exception.ID, err)
	}

	return nil
}

// UpdateExceptionStatus moves a pending exception to the given status. The
// status guard in the WHERE clause makes concurrent decisions safe: the
// second decider matches no row and gets db.ErrStale.
func (d *DB) UpdateExceptionStatus(ctx context.Context, exceptionID string, status string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE schedule_exceptions
		SET status = $2
		WHERE id = $1 AND status = 'pending'
	`, exceptionID, status)
	if err != nil {
		return fmt.Errorf("failed to update exception %s: %w", exceptionID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schedule_exceptions WHERE id = $1)`, exceptionID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check exception %s: %w", exceptionID, err)
		}
		if !exists {
			return fmt.Errorf("exception %s: %w", exceptionID, db.ErrNotFound)
		}
		return fmt.Errorf("exception %s already decided: %w", exceptionID, db.ErrStale)
	}

	return nil
}

func scanException(row pgx.Row) (*db.ScheduleException, error) {
	var ex db.ScheduleException
	err := row.Scan(&ex.ID, &ex.WorkerID, &ex.Type, &ex.Title, &ex.StartDate, &ex.EndDate,
		&ex.FullDay, &ex.StartMinutes, &ex.EndMinutes, &ex.Status, &ex.Notes, &ex.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func scanExceptions(rows pgx.Rows) ([]db.ScheduleException, error) {
	var exceptions []db.ScheduleException
	for rows.Next() {
		ex, err := scanException(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		exceptions = append(exceptions, *ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exceptions: %w", err)
	}

	return exceptions, nil
}
