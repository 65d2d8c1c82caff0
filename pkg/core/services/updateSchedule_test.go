package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

func TestUpdateSchedule_PersistsNormalizedWeek(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", ScheduleVersion: 3},
		},
	}

	draft := model.WeeklyScheduleDraft{
		"monday":    {Available: true, Start: "09:00", End: "17:30", BreakMinutes: 30},
		"wednesday": {Available: true, Start: "10:00", End: "14:00"},
	}

	result, err := UpdateSchedule(context.Background(), mock, zap.NewNop(), "w-1", draft)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Alice Moran", result.WorkerName)
	assert.Empty(t, result.Violations)

	monday := result.Schedule.Day(model.Monday)
	assert.True(t, monday.Available)
	assert.Equal(t, "09:00", monday.Start.String())
	assert.Equal(t, "17:30", monday.End.String())
	assert.Equal(t, 30, monday.BreakMinutes)
	assert.False(t, result.Schedule.Day(model.Tuesday).Available)

	// Replace is guarded by the version read from the worker
	assert.Equal(t, "w-1", mock.replacedWorkerID)
	assert.Equal(t, 3, mock.replacedVersion)

	// All seven weekday rows are written, Monday first
	require.Len(t, mock.replacedSchedules, 7)
	assert.Equal(t, db.DaySchedule{
		WorkerID:     "w-1",
		Weekday:      0,
		Available:    true,
		StartMinutes: 9 * 60,
		EndMinutes:   17*60 + 30,
		BreakMinutes: 30,
	}, mock.replacedSchedules[0])
	assert.Equal(t, db.DaySchedule{
		WorkerID:     "w-1",
		Weekday:      2,
		Available:    true,
		StartMinutes: 10 * 60,
		EndMinutes:   14 * 60,
	}, mock.replacedSchedules[2])
	assert.False(t, mock.replacedSchedules[1].Available)
	assert.False(t, mock.replacedSchedules[6].Available)
}

func TestUpdateSchedule_RejectedDraftIsNotPersisted(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", ScheduleVersion: 3},
		},
	}

	// Two independent problems, both reported in one pass
	draft := model.WeeklyScheduleDraft{
		"monday": {Available: true, Start: "20:00", End: "08:00"},
		"friday": {Available: true, Start: "09:00", End: "17:00", BreakMinutes: 600},
	}

	result, err := UpdateSchedule(context.Background(), mock, zap.NewNop(), "w-1", draft)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Violations, 2)
	fields := []string{result.Violations[0].Field, result.Violations[1].Field}
	assert.Contains(t, fields, "monday")
	assert.Contains(t, fields, "friday.breakMinutes")

	assert.Empty(t, mock.replacedSchedules)
	assert.Empty(t, mock.replacedWorkerID)
}

func TestUpdateSchedule_UnknownWorker(t *testing.T) {
	mock := &mockStore{}

	draft := model.WeeklyScheduleDraft{
		"monday": {Available: true, Start: "09:00", End: "17:00"},
	}

	result, err := UpdateSchedule(context.Background(), mock, zap.NewNop(), "w-ghost", draft)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Nil(t, result)
}

func TestUpdateSchedule_ConcurrentEditSurfacesAsStale(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", ScheduleVersion: 3},
		},
		replaceErr: db.ErrStale,
	}

	draft := model.WeeklyScheduleDraft{
		"monday": {Available: true, Start: "09:00", End: "17:00"},
	}

	result, err := UpdateSchedule(context.Background(), mock, zap.NewNop(), "w-1", draft)
	assert.ErrorIs(t, err, db.ErrStale)
	assert.Nil(t, result)
}
