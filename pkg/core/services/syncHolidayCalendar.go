package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/db"
)

// HolidayRule is one recurring company holiday, with its recurrence rule
// already parsed
type HolidayRule struct {
	Title string
	Rule  *rrule.RRule
}

// HolidaySyncResult represents the outcome of a holiday calendar sync
type HolidaySyncResult struct {
	Dates   []time.Time
	Workers int
	Created int
	Skipped int
}

// SyncHolidayCalendar expands the holiday rules over the horizon and files
// an approved full-day holiday exception for every active worker on every
// matching date. Dates a worker already has an approved holiday for are
// skipped, so re-running the sync is safe.
func SyncHolidayCalendar(ctx context.Context, workers db.WorkerStore, exceptions db.ExceptionStore, logger *zap.Logger, rules []HolidayRule, from time.Time, horizonDays int) (*HolidaySyncResult, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d days", horizonDays)
	}

	start := model.DateOf(from)
	end := start.AddDate(0, 0, horizonDays)

	logger.Info("Syncing holiday calendar",
		zap.Int("rules", len(rules)),
		zap.String("from", start.Format("2006-01-02")),
		zap.String("to", end.Format("2006-01-02")))

	// Expand every rule over the horizon. The first rule naming a date wins
	// so overlapping rules do not double-file.
	titleByDate := make(map[time.Time]string)
	for _, rule := range rules {
		rule.Rule.DTStart(start)
		for _, occurrence := range rule.Rule.Between(start, end, true) {
			date := model.DateOf(occurrence)
			if _, ok := titleByDate[date]; !ok {
				titleByDate[date] = rule.Title
			}
		}
	}

	dates := make([]time.Time, 0, len(titleByDate))
	for date := range titleByDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	logger.Debug("Holiday dates in horizon", zap.Int("count", len(dates)))

	logger.Debug("Fetching workers")
	workerRows, err := workers.GetWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workers: %w", err)
	}

	logger.Debug("Fetching existing exceptions")
	existingRows, err := exceptions.GetAllExceptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exceptions: %w", err)
	}

	holidaysByWorker := make(map[string][]model.ScheduleException)
	for _, row := range existingRows {
		if row.Type != string(model.ExceptionHoliday) || row.Status != string(model.StatusApproved) {
			continue
		}
		holidaysByWorker[row.WorkerID] = append(holidaysByWorker[row.WorkerID], convertException(row))
	}

	result := &HolidaySyncResult{Dates: dates}
	for _, worker := range workerRows {
		if !worker.IsActive {
			continue
		}
		result.Workers++

		for _, date := range dates {
			if coversAny(holidaysByWorker[worker.ID], date) {
				result.Skipped++
				continue
			}

			row := db.ScheduleException{
				ID:        uuid.New().String(),
				WorkerID:  worker.ID,
				Type:      string(model.ExceptionHoliday),
				Title:     titleByDate[date],
				StartDate: date,
				EndDate:   date,
				FullDay:   true,
				Status:    string(model.StatusApproved),
				CreatedAt: from,
			}
			if err := exceptions.InsertException(ctx, &row); err != nil {
				return nil, fmt.Errorf("failed to insert holiday for worker %s on %s: %w",
					worker.ID, date.Format("2006-01-02"), err)
			}
			result.Created++
		}
	}

	logger.Info("Holiday calendar synced",
		zap.Int("dates", len(dates)),
		zap.Int("workers", result.Workers),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func coversAny(holidays []model.ScheduleException, date time.Time) bool {
	for i := range holidays {
		if holidays[i].CoversDate(date) {
			return true
		}
	}
	return false
}
