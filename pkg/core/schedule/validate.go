package schedule

import (
	"fmt"
	"sort"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// Caps on declared working hours. Break time is unpaid and subtracted from
// the net figures the caps apply to.
const (
	MaxBreakMinutes   = 8 * 60
	MaxDayNetMinutes  = 12 * 60
	MaxWeekNetMinutes = 60 * 60
)

// ValidateAndNormalize checks a submitted weekly schedule draft and converts
// it to the fixed seven-day form. Every violation in the draft is collected
// and returned together; the normalized schedule is only usable when the
// violation list is empty.
//
// Weekday keys are matched case-insensitively. Unknown keys are rejected
// rather than dropped, and a day that maps twice (e.g. "monday" and
// "Monday") is rejected as a duplicate. Days absent from the draft become
// unavailable days.
//
// Feeding a normalized schedule back through validation yields the same
// schedule with no violations.
func ValidateAndNormalize(draft model.WeeklyScheduleDraft) (model.WeeklySchedule, []model.Violation) {
	var violations []model.Violation

	// Resolve draft keys to weekdays first so key problems surface in a
	// stable order regardless of map iteration.
	byDay := make(map[model.Weekday]model.DayScheduleDraft)
	var unknownKeys []string
	var duplicateDays []model.Weekday

	for key, entry := range draft {
		day, err := model.ParseWeekday(key)
		if err != nil {
			unknownKeys = append(unknownKeys, key)
			continue
		}
		if _, exists := byDay[day]; exists {
			duplicateDays = append(duplicateDays, day)
			continue
		}
		byDay[day] = entry
	}

	sort.Strings(unknownKeys)
	for _, key := range unknownKeys {
		violations = append(violations, model.Violation{
			Field:   key,
			Message: "unknown weekday",
		})
	}

	sort.Slice(duplicateDays, func(i, j int) bool { return duplicateDays[i] < duplicateDays[j] })
	for _, day := range duplicateDays {
		violations = append(violations, model.Violation{
			Field:   day.String(),
			Message: "weekday appears more than once",
		})
	}

	var ws model.WeeklySchedule
	weekNetMinutes := 0

	for day := model.Monday; day <= model.Sunday; day++ {
		entry, ok := byDay[day]
		if !ok || !entry.Available {
			// Unavailable days carry no times
			continue
		}

		normalized, dayViolations := validateDay(day, entry)
		violations = append(violations, dayViolations...)
		if len(dayViolations) > 0 {
			continue
		}

		ws[day] = normalized
		weekNetMinutes += normalized.NetMinutes()
	}

	if weekNetMinutes > MaxWeekNetMinutes {
		violations = append(violations, model.Violation{
			Field: "weeklySchedule",
			Message: fmt.Sprintf("net weekly hours %.1f exceed the %d hour cap",
				float64(weekNetMinutes)/60, MaxWeekNetMinutes/60),
		})
	}

	if len(violations) > 0 {
		return model.WeeklySchedule{}, violations
	}
	return ws, nil
}

// validateDay checks a single available day and returns its normalized form
func validateDay(day model.Weekday, entry model.DayScheduleDraft) (model.DaySchedule, []model.Violation) {
	var violations []model.Violation
	name := day.String()

	start, err := model.ParseTimeOfDay(entry.Start)
	if err != nil {
		if entry.Start == "" {
			violations = append(violations, model.Violation{
				Field:   name + ".start",
				Message: "required when the day is available",
			})
		} else {
			violations = append(violations, model.Violation{
				Field:   name + ".start",
				Message: err.Error(),
			})
		}
	}

	end, err := model.ParseTimeOfDay(entry.End)
	if err != nil {
		if entry.End == "" {
			violations = append(violations, model.Violation{
				Field:   name + ".end",
				Message: "required when the day is available",
			})
		} else {
			violations = append(violations, model.Violation{
				Field:   name + ".end",
				Message: err.Error(),
			})
		}
	}

	if entry.BreakMinutes < 0 {
		violations = append(violations, model.Violation{
			Field:   name + ".breakMinutes",
			Message: "must not be negative",
		})
	} else if entry.BreakMinutes > MaxBreakMinutes {
		violations = append(violations, model.Violation{
			Field:   name + ".breakMinutes",
			Message: fmt.Sprintf("must not exceed %d minutes", MaxBreakMinutes),
		})
	}

	if len(violations) > 0 {
		return model.DaySchedule{}, violations
	}

	if !start.Before(end) {
		violations = append(violations, model.Violation{
			Field:   name,
			Message: fmt.Sprintf("start %s must be before end %s", start, end),
		})
		return model.DaySchedule{}, violations
	}

	normalized := model.DaySchedule{
		Available:    true,
		Start:        start,
		End:          end,
		BreakMinutes: entry.BreakMinutes,
	}

	if normalized.BreakMinutes > normalized.SpanMinutes() {
		violations = append(violations, model.Violation{
			Field:   name + ".breakMinutes",
			Message: "break is longer than the working window",
		})
	}
	if normalized.NetMinutes() > MaxDayNetMinutes {
		violations = append(violations, model.Violation{
			Field: name,
			Message: fmt.Sprintf("net hours %.1f exceed the %d hour cap",
				float64(normalized.NetMinutes())/60, MaxDayNetMinutes/60),
		})
	}

	if len(violations) > 0 {
		return model.DaySchedule{}, violations
	}
	return normalized, nil
}
