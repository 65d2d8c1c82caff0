package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// QualificationSummary is one qualified role on a worker's roster entry
type QualificationSummary struct {
	RoleName string
	Level    int
}

// WorkerSummary is one row of the worker roster
type WorkerSummary struct {
	ID             string
	Name           string
	Email          string
	Rating         float64
	HourlyRate     float64
	IsActive       bool
	Qualifications []QualificationSummary
}

// ListWorkers returns the full worker roster with each worker's qualified
// roles resolved to role names.
func ListWorkers(ctx context.Context, workers db.WorkerStore, jobs db.JobStore, logger *zap.Logger) ([]WorkerSummary, error) {
	logger.Info("Listing workers")

	rows, err := workers.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	qualifications, err := workers.GetAllQualifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualifications: %w", err)
	}

	roles, err := jobs.GetJobRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job roles: %w", err)
	}

	roleNameByID := make(map[string]string, len(roles))
	for _, role := range roles {
		roleNameByID[role.ID] = role.Name
	}

	qualsByWorker := make(map[string][]QualificationSummary)
	for _, q := range qualifications {
		name, ok := roleNameByID[q.RoleID]
		if !ok {
			// Orphaned role reference; show the raw ID rather than hide it
			name = q.RoleID
		}
		qualsByWorker[q.WorkerID] = append(qualsByWorker[q.WorkerID], QualificationSummary{
			RoleName: name,
			Level:    q.Level,
		})
	}

	summaries := make([]WorkerSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, WorkerSummary{
			ID:             row.ID,
			Name:           row.Name,
			Email:          row.Email,
			Rating:         row.Rating,
			HourlyRate:     row.HourlyRate,
			IsActive:       row.IsActive,
			Qualifications: qualsByWorker[row.ID],
		})
	}

	logger.Info("Workers listed", zap.Int("count", len(summaries)))

	return summaries, nil
}
