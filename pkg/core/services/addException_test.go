package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

func TestAddException_FilesPendingFullDayException(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{{ID: "w-1", Name: "Alice Moran"}},
	}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	draft := model.ExceptionDraft{
		Type:      "vacation",
		Title:     "Beach week",
		StartDate: "2026-08-31",
		EndDate:   "2026-09-04",
		FullDay:   true,
		Notes:     "booked months ago",
	}

	result, err := AddException(context.Background(), mock, mock, zap.NewNop(), "w-1", draft, now)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Exception)
	assert.Empty(t, result.Violations)

	ex := result.Exception
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, model.StatusPending, ex.Status)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), ex.StartDate)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), ex.EndDate)
	assert.Equal(t, now, ex.CreatedAt)

	require.Len(t, mock.insertedExceptions, 1)
	row := mock.insertedExceptions[0]
	assert.Equal(t, ex.ID, row.ID)
	assert.Equal(t, "w-1", row.WorkerID)
	assert.Equal(t, "vacation", row.Type)
	assert.Equal(t, "Beach week", row.Title)
	assert.True(t, row.FullDay)
	assert.Equal(t, "pending", row.Status)
	assert.Equal(t, "booked months ago", row.Notes)
}

func TestAddException_PartialDayCarriesTimes(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{{ID: "w-1", Name: "Alice Moran"}},
	}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	draft := model.ExceptionDraft{
		Type:      "personal",
		Title:     "Dentist",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-01",
		StartTime: "08:00",
		EndTime:   "12:00",
	}

	result, err := AddException(context.Background(), mock, mock, zap.NewNop(), "w-1", draft, now)
	require.NoError(t, err)
	assert.Empty(t, result.Violations)

	require.Len(t, mock.insertedExceptions, 1)
	row := mock.insertedExceptions[0]
	assert.False(t, row.FullDay)
	assert.Equal(t, 8*60, row.StartMinutes)
	assert.Equal(t, 12*60, row.EndMinutes)
}

func TestAddException_RejectedDraftIsNotPersisted(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{{ID: "w-1", Name: "Alice Moran"}},
	}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	// Bad type, missing title, and the range runs backwards: all three come
	// back together
	draft := model.ExceptionDraft{
		Type:      "roadtrip",
		StartDate: "2026-09-04",
		EndDate:   "2026-08-31",
		FullDay:   true,
	}

	result, err := AddException(context.Background(), mock, mock, zap.NewNop(), "w-1", draft, now)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.Exception)

	require.Len(t, result.Violations, 3)
	fields := make([]string, 0, len(result.Violations))
	for _, v := range result.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "endDate")

	assert.Empty(t, mock.insertedExceptions)
}

func TestAddException_RejectsBackdatedStart(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{{ID: "w-1", Name: "Alice Moran"}},
	}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	draft := model.ExceptionDraft{
		Type:      "sick",
		Title:     "Flu",
		StartDate: "2026-08-20",
		EndDate:   "2026-08-27",
		FullDay:   true,
	}

	result, err := AddException(context.Background(), mock, mock, zap.NewNop(), "w-1", draft, now)
	require.NoError(t, err)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "startDate", result.Violations[0].Field)
	assert.Equal(t, "exception cannot start in the past", result.Violations[0].Message)
	assert.Empty(t, mock.insertedExceptions)
}

func TestAddException_UnknownWorker(t *testing.T) {
	mock := &mockStore{}
	now := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	draft := model.ExceptionDraft{
		Type:      "vacation",
		Title:     "Beach week",
		StartDate: "2026-08-31",
		EndDate:   "2026-09-04",
		FullDay:   true,
	}

	result, err := AddException(context.Background(), mock, mock, zap.NewNop(), "w-ghost", draft, now)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Nil(t, result)
}
