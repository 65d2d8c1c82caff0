package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// GetJob retrieves a single job record by ID
func (d *DB) GetJob(ctx context.Context, jobID string) (*db.Job, error) {
	var j db.Job
	err := d.pool.QueryRow(ctx, `
		SELECT id, title, location, start_at, end_at
		FROM jobs
		WHERE id = $1
	`, jobID).Scan(&j.ID, &j.Title, &j.Location, &j.StartAt, &j.EndAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", jobID, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job %s: %w", jobID, err)
	}

	return &j, nil
}

// GetJobRequirements retrieves the staffing requirements of one job
func (d *DB) GetJobRequirements(ctx context.Context, jobID string) ([]db.JobRequirement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT job_id, role_id, quantity, min_level
		FROM job_requirements
		WHERE job_id = $1
		ORDER BY role_id
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var requirements []db.JobRequirement
	for rows.Next() {
		var r db.JobRequirement
		if err := rows.Scan(&r.JobID, &r.RoleID, &r.Quantity, &r.MinLevel); err != nil {
			return nil, fmt.Errorf("failed to scan job requirement: %w", err)
		}
		requirements = append(requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job requirements: %w", err)
	}

	return requirements, nil
}

// GetJobRoles retrieves all job role records ordered by name
func (d *DB) GetJobRoles(ctx context.Context) ([]db.JobRole, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, base_rate
		FROM job_roles
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query job roles: %w", err)
	}
	defer rows.Close()

	var roles []db.JobRole
	for rows.Next() {
		var r db.JobRole
		if err := rows.Scan(&r.ID, &r.Name, &r.BaseRate); err != nil {
			return nil, fmt.Errorf("failed to scan job role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job roles: %w", err)
	}

	return roles, nil
}
