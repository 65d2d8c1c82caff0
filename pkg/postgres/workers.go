package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// GetWorkers retrieves all worker records ordered by name
func (d *DB) GetWorkers(ctx context.Context) ([]db.Worker, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, email, rating, hourly_rate, is_active, schedule_version
		FROM workers
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []db.Worker
	for rows.Next() {
		var w db.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.Rating, &w.HourlyRate, &w.IsActive, &w.ScheduleVersion); err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read workers: %w", err)
	}

	return workers, nil
}

// GetWorker retrieves a single worker record by ID
func (d *DB) GetWorker(ctx context.Context, workerID string) (*db.Worker, error) {
	var w db.Worker
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, email, rating, hourly_rate, is_active, schedule_version
		FROM workers
		WHERE id = $1
	`, workerID).Scan(&w.ID, &w.Name, &w.Email, &w.Rating, &w.HourlyRate, &w.IsActive, &w.ScheduleVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("worker %s: %w", workerID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query worker %s: %w", workerID, err)
	}

	return &w, nil
}

// GetDaySchedules retrieves the weekly schedule rows for one worker
func (d *DB) GetDaySchedules(ctx context.Context, workerID string) ([]db.DaySchedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT worker_id, weekday, available, start_minutes, end_minutes, break_minutes
		FROM day_schedules
		WHERE worker_id = $1
		ORDER BY weekday
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query day schedules for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return scanDaySchedules(rows)
}

// GetAllDaySchedules retrieves the weekly schedule rows for every worker
func (d *DB) GetAllDaySchedules(ctx context.Context) ([]db.DaySchedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT worker_id, weekday, available, start_minutes, end_minutes, break_minutes
		FROM day_schedules
		ORDER BY worker_id, weekday
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query day schedules: %w", err)
	}
	defer rows.Close()

	return scanDaySchedules(rows)
}

func scanDaySchedules(rows pgx.Rows) ([]db.DaySchedule, error) {
	var schedules []db.DaySchedule
	for rows.Next() {
		var s db.DaySchedule
		if err := rows.Scan(&s.WorkerID, &s.Weekday, &s.Available, &s.StartMinutes, &s.EndMinutes, &s.BreakMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan day schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day schedules: %w", err)
	}

	return schedules, nil
}

// GetQualifications retrieves one worker's role qualifications
func (d *DB) GetQualifications(ctx context.Context, workerID string) ([]db.WorkerQualification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT worker_id, role_id, level
		FROM worker_qualifications
		WHERE worker_id = $1
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifications for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	return scanQualifications(rows)
}

// GetAllQualifications retrieves every worker qualification record
func (d *DB) GetAllQualifications(ctx context.Context) ([]db.WorkerQualification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT worker_id, role_id, level
		FROM worker_qualifications
		ORDER BY worker_id, role_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query qualifications: %w", err)
	}
	defer rows.Close()

	return scanQualifications(rows)
}

func scanQualifications(rows pgx.Rows) ([]db.WorkerQualification, error) {
	var qualifications []db.WorkerQualification
	for rows.Next() {
		var q db.WorkerQualification
		if err := rows.Scan(&q.WorkerID, &q.RoleID, &q.Level); err != nil {
			return nil, fmt.Errorf("failed to scan qualification: %w", err)
		}
		qualifications = append(qualifications, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read qualifications: %w", err)
	}

	return qualifications, nil
}

// ReplaceDaySchedules swaps in a worker's full weekly schedule in a single
// transaction. The version bump doubles as the optimistic lock: if another
// edit landed since the caller read the worker, no row matches and db.ErrStale
// is returned.
func (d *DB) ReplaceDaySchedules(ctx context.Context, workerID string, version int, schedules []db.DaySchedule) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE workers
		SET schedule_version = schedule_version + 1
		WHERE id = $1 AND schedule_version = $2
	`, workerID, version)
	if err != nil {
		return fmt.Errorf("failed to bump schedule version for worker %s: %w", workerID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workers WHERE id = $1)`, workerID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check worker %s: %w", workerID, err)
		}
		if !exists {
			return fmt.Errorf("worker %s: %w", workerID, db.ErrNotFound)
		}
		return fmt.Errorf("worker %s schedule: %w", workerID, db.ErrStale)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM day_schedules WHERE worker_id = $1`, workerID); err != nil {
		return fmt.Errorf("failed to clear day schedules for worker %s: %w", workerID, err)
	}

	for _, s := range schedules {
		_, err := tx.Exec(ctx, `
			INSERT INTO day_schedules (worker_id, weekday, available, start_minutes, end_minutes, break_minutes)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, workerID, s.Weekday, s.Available, s.StartMinutes, s.EndMinutes, s.BreakMinutes)
		if err != nil {
			return fmt.Errorf("failed to insert day schedule for worker %s weekday %d: %w", workerID, s.Weekday, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit schedule replace for worker %s: %w", workerID, err)
	}

	return nil
}
