package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/suggest"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// mockStore implements the store interfaces against in-memory fixtures
type mockStore struct {
	workers        []db.Worker
	daySchedules   []db.DaySchedule
	exceptions     []db.ScheduleException
	qualifications []db.WorkerQualification
	jobs           []db.Job
	requirements   []db.JobRequirement
	roles          []db.JobRole
	crews          []db.Crew
	crewMembers    []db.CrewMember
	capabilities   []db.CrewCapability
	commitments    []db.Commitment

	insertedExceptions []db.ScheduleException
	statusUpdates      []statusUpdate
	replacedWorkerID   string
	replacedVersion    int
	replacedSchedules  []db.DaySchedule

	replaceErr error
	insertErr  error
	updateErr  error
}

type statusUpdate struct {
	exceptionID string
	status      string
}

func (m *mockStore) GetWorkers(ctx context.Context) ([]db.Worker, error) {
	return m.workers, nil
}

func (m *mockStore) GetWorker(ctx context.Context, workerID string) (*db.Worker, error) {
	for i := range m.workers {
		if m.workers[i].ID == workerID {
			return &m.workers[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) GetDaySchedules(ctx context.Context, workerID string) ([]db.DaySchedule, error) {
	var rows []db.DaySchedule
	for _, row := range m.daySchedules {
		if row.WorkerID == workerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockStore) GetAllDaySchedules(ctx context.Context) ([]db.DaySchedule, error) {
	return m.daySchedules, nil
}

func (m *mockStore) GetQualifications(ctx context.Context, workerID string) ([]db.WorkerQualification, error) {
	var rows []db.WorkerQualification
	for _, row := range m.qualifications {
		if row.WorkerID == workerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockStore) GetAllQualifications(ctx context.Context) ([]db.WorkerQualification, error) {
	return m.qualifications, nil
}

func (m *mockStore) ReplaceDaySchedules(ctx context.Context, workerID string, version int, schedules []db.DaySchedule) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replacedWorkerID = workerID
	m.replacedVersion = version
	m.replacedSchedules = schedules
	return nil
}

func (m *mockStore) GetException(ctx context.Context, exceptionID string) (*db.ScheduleException, error) {
	for i := range m.exceptions {
		if m.exceptions[i].ID == exceptionID {
			return &m.exceptions[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) GetWorkerExceptions(ctx context.Context, workerID string) ([]db.ScheduleException, error) {
	var rows []db.ScheduleException
	for _, row := range m.exceptions {
		if row.WorkerID == workerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockStore) GetAllExceptions(ctx context.Context) ([]db.ScheduleException, error) {
	return m.exceptions, nil
}

func (m *mockStore) InsertException(ctx context.Context, exception *db.ScheduleException) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedExceptions = append(m.insertedExceptions, *exception)
	return nil
}

func (m *mockStore) UpdateExceptionStatus(ctx context.Context, exceptionID string, status string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.statusUpdates = append(m.statusUpdates, statusUpdate{exceptionID: exceptionID, status: status})
	return nil
}

func (m *mockStore) GetJob(ctx context.Context, jobID string) (*db.Job, error) {
	for i := range m.jobs {
		if m.jobs[i].ID == jobID {
			return &m.jobs[i], nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) GetJobRequirements(ctx context.Context, jobID string) ([]db.JobRequirement, error) {
	var rows []db.JobRequirement
	for _, row := range m.requirements {
		if row.JobID == jobID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockStore) GetJobRoles(ctx context.Context) ([]db.JobRole, error) {
	return m.roles, nil
}

func (m *mockStore) GetCrews(ctx context.Context) ([]db.Crew, error) {
	return m.crews, nil
}

func (m *mockStore) GetCrewMembers(ctx context.Context) ([]db.CrewMember, error) {
	return m.crewMembers, nil
}

func (m *mockStore) GetCrewCapabilities(ctx context.Context) ([]db.CrewCapability, error) {
	return m.capabilities, nil
}

func (m *mockStore) GetWorkerCommitments(ctx context.Context, workerID string) ([]db.Commitment, error) {
	var rows []db.Commitment
	for _, row := range m.commitments {
		if row.WorkerID == workerID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *mockStore) GetCommitmentsBetween(ctx context.Context, start, end time.Time) ([]db.Commitment, error) {
	var rows []db.Commitment
	for _, row := range m.commitments {
		if row.StartAt.Before(end) && row.EndAt.After(start) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// weekdayRows builds Monday-Friday schedule rows for a worker, times in
// minutes since midnight
func weekdayRows(workerID string, startMinutes, endMinutes int) []db.DaySchedule {
	rows := make([]db.DaySchedule, 0, 5)
	for weekday := 0; weekday < 5; weekday++ {
		rows = append(rows, db.DaySchedule{
			WorkerID:     workerID,
			Weekday:      weekday,
			Available:    true,
			StartMinutes: startMinutes,
			EndMinutes:   endMinutes,
		})
	}
	return rows
}

func TestGenerateSuggestions_AssemblesSnapshotAndRanks(t *testing.T) {
	// Monday job, 09:00-13:00, one rigger at level 2+
	mock := &mockStore{
		jobs: []db.Job{{
			ID:       "job-1",
			Title:    "Stage rig for Harbour Fest",
			Location: "Pier 4",
			StartAt:  time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
			EndAt:    time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC),
		}},
		requirements: []db.JobRequirement{
			{JobID: "job-1", RoleID: "role-rigger", Quantity: 1, MinLevel: 2},
		},
		roles: []db.JobRole{{ID: "role-rigger", Name: "Rigger", BaseRate: 30}},
		workers: []db.Worker{
			{ID: "w-ana", Name: "Ana Petrova", Email: "ana@example.com", Rating: 4.0, HourlyRate: 40, IsActive: true},
			{ID: "w-ben", Name: "Ben Okafor", Email: "ben@example.com", Rating: 5.0, HourlyRate: 50, IsActive: true},
		},
		daySchedules: append(
			weekdayRows("w-ana", 8*60, 18*60),
			weekdayRows("w-ben", 8*60, 18*60)...),
		qualifications: []db.WorkerQualification{
			{WorkerID: "w-ana", RoleID: "role-rigger", Level: 3},
			{WorkerID: "w-ben", RoleID: "role-rigger", Level: 5},
		},
		crews:       []db.Crew{{ID: "crew-1", Name: "Dock Crew", LeadWorkerID: "w-ana"}},
		crewMembers: []db.CrewMember{{CrewID: "crew-1", WorkerID: "w-ana"}},
		capabilities: []db.CrewCapability{
			{CrewID: "crew-1", RoleID: "role-rigger", Capacity: 1},
		},
		commitments: []db.Commitment{
			// Ben is double-booked inside the window and drops out
			{ID: "c-ben", WorkerID: "w-ben", JobID: "job-9",
				StartAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)},
			// Ana's afternoon booking does not touch the window
			{ID: "c-ana", WorkerID: "w-ana", JobID: "job-8",
				StartAt: time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC),
				EndAt:   time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)},
		},
	}

	result, err := GenerateSuggestions(context.Background(), mock, suggest.Config{}, zap.NewNop(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	// Job snapshot
	assert.Equal(t, "job-1", result.Job.ID)
	assert.Equal(t, "Stage rig for Harbour Fest", result.Job.Title)
	assert.Equal(t, "Pier 4", result.Job.Location)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), result.Job.Window.Start)
	require.Len(t, result.Job.Requirements, 1)
	assert.Equal(t, "role-rigger", result.Job.Requirements[0].RoleID)
	require.Len(t, result.Roles, 1)
	assert.Equal(t, "Rigger", result.Roles[0].Name)

	// Ana's bundle and her crew, ranked bundle first on the sequence
	// tiebreak; Ben never appears
	require.Len(t, result.Candidates, 2)
	assert.Empty(t, result.Skipped)

	bundle := result.Candidates[0]
	assert.Empty(t, bundle.CrewID)
	require.Len(t, bundle.Workers, 1)
	assert.Equal(t, "w-ana", bundle.Workers[0].WorkerID)
	assert.Equal(t, 3, bundle.Workers[0].Level)
	assert.True(t, bundle.Workers[0].IsLead)
	// fit 50 (60 min to the 08:00 edge), rating 80, proficiency 60:
	// 0.40*50 + 0.35*80 + 0.25*60 = 63
	assert.InDelta(t, 63.0, bundle.TotalScore, 0.001)
	// max(40, 30) * 4h
	assert.InDelta(t, 160.0, bundle.EstimatedCost, 0.001)

	crewCandidate := result.Candidates[1]
	assert.Equal(t, "crew-1", crewCandidate.CrewID)
	assert.Equal(t, "Dock Crew", crewCandidate.CrewName)
	require.Len(t, crewCandidate.Workers, 1)
	assert.Equal(t, "w-ana", crewCandidate.Workers[0].WorkerID)
	assert.InDelta(t, 63.0, crewCandidate.TotalScore, 0.001)
}

func TestGenerateSuggestions_UnknownJob(t *testing.T) {
	mock := &mockStore{}

	result, err := GenerateSuggestions(context.Background(), mock, suggest.Config{}, zap.NewNop(), "job-missing")
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Nil(t, result)
}

func TestGenerateSuggestions_RequirementWithUnknownRole(t *testing.T) {
	mock := &mockStore{
		jobs: []db.Job{{
			ID:      "job-1",
			Title:   "Mystery job",
			StartAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
			EndAt:   time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC),
		}},
		requirements: []db.JobRequirement{
			{JobID: "job-1", RoleID: "role-ghost", Quantity: 1, MinLevel: 1},
		},
		roles: []db.JobRole{{ID: "role-rigger", Name: "Rigger", BaseRate: 30}},
	}

	result, err := GenerateSuggestions(context.Background(), mock, suggest.Config{}, zap.NewNop(), "job-1")
	assert.ErrorIs(t, err, suggest.ErrMalformedInput)
	assert.Nil(t, result)
}
