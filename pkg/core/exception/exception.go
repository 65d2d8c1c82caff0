package exception

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// ErrFinalStatus is returned when deciding an exception that has already
// been approved or rejected. Decisions are never reopened; the worker files
// a new exception instead.
var ErrFinalStatus = errors.New("exception has already been decided")

const dateLayout = "2006-01-02"

// NewFromDraft validates a submitted exception request and mints a pending
// ScheduleException. All violations in the draft are collected and returned
// together. now anchors the no-backdating rule and the CreatedAt stamp so
// callers control the clock.
func NewFromDraft(workerID string, draft model.ExceptionDraft, now time.Time) (model.ScheduleException, []model.Violation) {
	var violations []model.Violation

	exType := model.ExceptionType(strings.TrimSpace(draft.Type))
	if !exType.IsValid() {
		violations = append(violations, model.Violation{
			Field: "type",
			Message: fmt.Sprintf("%q is not one of vacation, sick, personal, holiday, emergency",
				draft.Type),
		})
	}

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		violations = append(violations, model.Violation{
			Field:   "title",
			Message: "required",
		})
	}

	startDate, startErr := parseDate(draft.StartDate)
	if startErr != nil {
		violations = append(violations, model.Violation{Field: "startDate", Message: startErr.Error()})
	}
	endDate, endErr := parseDate(draft.EndDate)
	if endErr != nil {
		violations = append(violations, model.Violation{Field: "endDate", Message: endErr.Error()})
	}

	if startErr == nil && endErr == nil && endDate.Before(startDate) {
		violations = append(violations, model.Violation{
			Field:   "endDate",
			Message: fmt.Sprintf("end date %s is before start date %s", draft.EndDate, draft.StartDate),
		})
	}
	if startErr == nil && startDate.Before(model.DateOf(now)) {
		violations = append(violations, model.Violation{
			Field:   "startDate",
			Message: "exception cannot start in the past",
		})
	}

	var startTime, endTime model.TimeOfDay
	if draft.FullDay {
		if draft.StartTime != "" || draft.EndTime != "" {
			violations = append(violations, model.Violation{
				Field:   "startTime",
				Message: "times are not allowed on a full-day exception",
			})
		}
	} else {
		var timeViolations []model.Violation
		startTime, endTime, timeViolations = parsePartialDayTimes(draft.StartTime, draft.EndTime)
		violations = append(violations, timeViolations...)
	}

	if len(violations) > 0 {
		return model.ScheduleException{}, violations
	}

	return model.ScheduleException{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		Type:      exType,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		FullDay:   draft.FullDay,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.StatusPending,
		Notes:     strings.TrimSpace(draft.Notes),
		CreatedAt: now,
	}, nil
}

// Decide moves a pending exception to approved or rejected. Any other
// transition is refused: pending is the only decidable state and approved
// and rejected are terminal.
func Decide(ex *model.ScheduleException, to model.ExceptionStatus) error {
	if to != model.StatusApproved && to != model.StatusRejected {
		return fmt.Errorf("cannot move exception to %q: decisions are approved or rejected", to)
	}
	if ex.Status != model.StatusPending {
		return fmt.Errorf("exception %s is %s: %w", ex.ID, ex.Status, ErrFinalStatus)
	}

	ex.Status = to
	return nil
}

// ActiveOn returns the approved exceptions covering the given date, ordered
// partial-day first so the most specific override is considered before any
// full-day block, then by creation time.
func ActiveOn(exceptions []model.ScheduleException, date time.Time) []model.ScheduleException {
	var active []model.ScheduleException
	for _, ex := range exceptions {
		if ex.Status != model.StatusApproved {
			continue
		}
		if ex.CoversDate(date) {
			active = append(active, ex)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].FullDay != active[j].FullDay {
			return !active[i].FullDay
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// BlocksWindow reports whether an approved exception removes availability
// anywhere inside the window. A full-day exception blocks every covered
// date; a partial-day exception blocks only its half-open time range on each
// covered date.
func BlocksWindow(ex model.ScheduleException, window model.TimeRange) bool {
	if ex.Status != model.StatusApproved {
		return false
	}

	for _, slice := range window.SplitByDay() {
		if !ex.CoversDate(slice.Date) {
			continue
		}
		if ex.FullDay {
			return true
		}
		if slice.OverlapsMinutes(ex.StartTime.Minutes(), ex.EndTime.Minutes()) {
			return true
		}
	}
	return false
}

// parseDate parses an inclusive "2006-01-02" calendar date
func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, errors.New("required")
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected 2006-01-02 format", s)
	}
	return model.DateOf(d), nil
}

// parsePartialDayTimes validates the time window of a partial-day exception
func parsePartialDayTimes(start, end string) (model.TimeOfDay, model.TimeOfDay, []model.Violation) {
	var violations []model.Violation

	startTime, err := model.ParseTimeOfDay(start)
	if err != nil {
		if start == "" {
			violations = append(violations, model.Violation{
				Field:   "startTime",
				Message: "required for a partial-day exception",
			})
		} else {
			violations = append(violations, model.Violation{Field: "startTime", Message: err.Error()})
		}
	}

	endTime, err := model.ParseTimeOfDay(end)
	if err != nil {
		if end == "" {
			violations = append(violations, model.Violation{
				Field:   "endTime",
				Message: "required for a partial-day exception",
			})
		} else {
			violations = append(violations, model.Violation{Field: "endTime", Message: err.Error()})
		}
	}

	if len(violations) == 0 && !startTime.Before(endTime) {
		violations = append(violations, model.Violation{
			Field:   "endTime",
			Message: fmt.Sprintf("start %s must be before end %s", startTime, endTime),
		})
	}

	if len(violations) > 0 {
		return model.TimeOfDay{}, model.TimeOfDay{}, violations
	}
	return startTime, endTime, nil
}
