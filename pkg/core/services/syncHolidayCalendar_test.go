package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/db"
)

func yearlyRule(t *testing.T, month, day int) *rrule.RRule {
	t.Helper()
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Bymonth:    []int{month},
		Bymonthday: []int{day},
	})
	require.NoError(t, err)
	return rule
}

func TestSyncHolidayCalendar_FilesApprovedHolidaysForActiveWorkers(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", IsActive: true},
			{ID: "w-2", Name: "Bob Reyes", IsActive: true},
			{ID: "w-3", Name: "Cara Lindt", IsActive: false},
		},
	}

	rules := []HolidayRule{
		{Title: "Christmas Day", Rule: yearlyRule(t, 12, 25)},
		{Title: "New Year's Day", Rule: yearlyRule(t, 1, 1)},
	}
	from := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	result, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), rules, from, 150)
	require.NoError(t, err)
	require.NotNil(t, result)

	// 150 days from Aug 26 reaches Jan 23, catching both holidays
	require.Len(t, result.Dates, 2)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), result.Dates[0])
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), result.Dates[1])

	// Two active workers, two dates each; Cara is inactive and gets none
	assert.Equal(t, 2, result.Workers)
	assert.Equal(t, 4, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, mock.insertedExceptions, 4)

	filed := make(map[string]bool)
	for _, row := range mock.insertedExceptions {
		filed[row.WorkerID+" "+row.StartDate.Format("2006-01-02")] = true

		assert.NotEmpty(t, row.ID)
		assert.Equal(t, "holiday", row.Type)
		assert.Equal(t, "approved", row.Status)
		assert.True(t, row.FullDay)
		assert.Equal(t, row.StartDate, row.EndDate)
		assert.Equal(t, from, row.CreatedAt)
	}
	assert.True(t, filed["w-1 2026-12-25"])
	assert.True(t, filed["w-1 2027-01-01"])
	assert.True(t, filed["w-2 2026-12-25"])
	assert.True(t, filed["w-2 2027-01-01"])

	for _, row := range mock.insertedExceptions {
		if row.StartDate.Month() == time.December {
			assert.Equal(t, "Christmas Day", row.Title)
		} else {
			assert.Equal(t, "New Year's Day", row.Title)
		}
	}
}

func TestSyncHolidayCalendar_OnlyApprovedHolidaysSuppressRefiling(t *testing.T) {
	xmas := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", IsActive: true},
			{ID: "w-2", Name: "Bob Reyes", IsActive: true},
		},
		exceptions: []db.ScheduleException{
			// Already synced for Alice: skipped on the rerun
			{ID: "ex-1", WorkerID: "w-1", Type: "holiday", Title: "Christmas Day",
				StartDate: xmas, EndDate: xmas, FullDay: true, Status: "approved"},
			// Pending holiday and approved vacation do not count
			{ID: "ex-2", WorkerID: "w-2", Type: "holiday", Title: "Christmas Day",
				StartDate: xmas, EndDate: xmas, FullDay: true, Status: "pending"},
			{ID: "ex-3", WorkerID: "w-2", Type: "vacation", Title: "Winter break",
				StartDate: xmas, EndDate: time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC),
				FullDay: true, Status: "approved"},
		},
	}

	rules := []HolidayRule{
		{Title: "Christmas Day", Rule: yearlyRule(t, 12, 25)},
		{Title: "New Year's Day", Rule: yearlyRule(t, 1, 1)},
	}
	from := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	result, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), rules, from, 150)
	require.NoError(t, err)

	// Alice still needs New Year's Day; Bob needs both dates
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, mock.insertedExceptions, 3)
}

func TestSyncHolidayCalendar_RerunIsIdempotent(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{
			{ID: "w-1", Name: "Alice Moran", IsActive: true},
			{ID: "w-2", Name: "Bob Reyes", IsActive: true},
		},
	}

	rules := []HolidayRule{
		{Title: "Christmas Day", Rule: yearlyRule(t, 12, 25)},
		{Title: "New Year's Day", Rule: yearlyRule(t, 1, 1)},
	}
	from := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	first, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), rules, from, 150)
	require.NoError(t, err)
	require.Equal(t, 4, first.Created)

	// Feed the filed exceptions back in as existing state
	mock.exceptions = append(mock.exceptions, mock.insertedExceptions...)
	mock.insertedExceptions = nil

	again, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), rules, from, 150)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 4, again.Skipped)
	assert.Empty(t, mock.insertedExceptions)
}

func TestSyncHolidayCalendar_FirstRuleWinsOnSharedDate(t *testing.T) {
	mock := &mockStore{
		workers: []db.Worker{{ID: "w-1", Name: "Alice Moran", IsActive: true}},
	}

	rules := []HolidayRule{
		{Title: "Christmas Day", Rule: yearlyRule(t, 12, 25)},
		{Title: "Winter Shutdown", Rule: yearlyRule(t, 12, 25)},
	}
	from := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	result, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), rules, from, 150)
	require.NoError(t, err)

	require.Len(t, result.Dates, 1)
	require.Len(t, mock.insertedExceptions, 1)
	assert.Equal(t, "Christmas Day", mock.insertedExceptions[0].Title)
}

func TestSyncHolidayCalendar_RejectsNonPositiveHorizon(t *testing.T) {
	mock := &mockStore{}
	from := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)

	for _, horizon := range []int{0, -3} {
		result, err := SyncHolidayCalendar(context.Background(), mock, mock, zap.NewNop(), nil, from, horizon)
		assert.Error(t, err)
		assert.Nil(t, result)
	}
}
