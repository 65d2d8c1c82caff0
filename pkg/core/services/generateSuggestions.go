package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/core/suggest"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// SuggestionOutcome represents the result of generating assignment
// suggestions for a job
type SuggestionOutcome struct {
	Job        model.JobData
	Roles      []model.JobRole
	Candidates []suggest.Candidate
	Skipped    []suggest.SkippedWorker
}

// GenerateSuggestions loads a job with the full worker, crew and commitment
// picture and runs the suggestion engine over it. The snapshot is loaded in
// one pass, so a request sees one consistent state.
func GenerateSuggestions(ctx context.Context, store db.SuggestionStore, cfg suggest.Config, logger *zap.Logger, jobID string) (*SuggestionOutcome, error) {
	logger.Info("Generating assignment suggestions", zap.String("job_id", jobID))

	logger.Debug("Fetching job")
	jobRow, err := store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}

	requirementRows, err := store.GetJobRequirements(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job requirements: %w", err)
	}

	job := model.JobData{
		ID:       jobRow.ID,
		Title:    jobRow.Title,
		Location: jobRow.Location,
		Window:   model.TimeRange{Start: jobRow.StartAt, End: jobRow.EndAt},
	}
	for _, row := range requirementRows {
		job.Requirements = append(job.Requirements, model.JobRequirement{
			RoleID:   row.RoleID,
			Quantity: row.Quantity,
			MinLevel: row.MinLevel,
		})
	}

	logger.Debug("Fetching roles")
	roleRows, err := store.GetJobRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job roles: %w", err)
	}
	roles := make([]model.JobRole, len(roleRows))
	for i, row := range roleRows {
		roles[i] = model.JobRole{ID: row.ID, Name: row.Name, BaseRate: row.BaseRate}
	}

	logger.Debug("Fetching worker pool")
	workers, err := loadWorkers(ctx, store)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching crews")
	crewRows, err := store.GetCrews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crews: %w", err)
	}
	memberRows, err := store.GetCrewMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crew members: %w", err)
	}
	capabilityRows, err := store.GetCrewCapabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crew capabilities: %w", err)
	}

	logger.Debug("Fetching commitments", zap.Time("from", job.Window.Start), zap.Time("to", job.Window.End))
	commitmentRows, err := store.GetCommitmentsBetween(ctx, job.Window.Start, job.Window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commitments: %w", err)
	}

	input := suggest.Input{
		Job:         job,
		Roles:       roles,
		Workers:     workers,
		Crews:       convertCrews(crewRows, memberRows, capabilityRows),
		Commitments: convertCommitments(commitmentRows),
	}

	logger.Info("Running suggestion engine",
		zap.Int("workers", len(input.Workers)),
		zap.Int("crews", len(input.Crews)),
		zap.Int("requirements", len(job.Requirements)),
		zap.Int("total_slots", job.TotalSlots()))

	result, err := suggest.Suggest(cfg, input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	logger.Info("Suggestions generated",
		zap.String("job_id", jobID),
		zap.Int("candidates", len(result.Candidates)),
		zap.Int("skipped_workers", len(result.Skipped)))

	return &SuggestionOutcome{
		Job:        job,
		Roles:      roles,
		Candidates: result.Candidates,
		Skipped:    result.Skipped,
	}, nil
}

// loadWorkers fetches every worker with their schedules, exceptions and
// qualifications attached
func loadWorkers(ctx context.Context, store db.SuggestionStore) ([]model.Worker, error) {
	workerRows, err := store.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	scheduleRows, err := store.GetAllDaySchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch day schedules: %w", err)
	}
	schedulesByWorker := make(map[string][]db.DaySchedule)
	for _, row := range scheduleRows {
		schedulesByWorker[row.WorkerID] = append(schedulesByWorker[row.WorkerID], row)
	}

	exceptionRows, err := store.GetAllExceptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exceptions: %w", err)
	}
	exceptionsByWorker := make(map[string][]db.ScheduleException)
	for _, row := range exceptionRows {
		exceptionsByWorker[row.WorkerID] = append(exceptionsByWorker[row.WorkerID], row)
	}

	qualificationRows, err := store.GetAllQualifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qualifications: %w", err)
	}
	qualificationsByWorker := make(map[string][]db.WorkerQualification)
	for _, row := range qualificationRows {
		qualificationsByWorker[row.WorkerID] = append(qualificationsByWorker[row.WorkerID], row)
	}

	workers := make([]model.Worker, len(workerRows))
	for i, row := range workerRows {
		workers[i] = convertWorker(row,
			schedulesByWorker[row.ID],
			exceptionsByWorker[row.ID],
			qualificationsByWorker[row.ID])
	}
	return workers, nil
}
