package schedule

import (
	"time"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// IsAvailable reports whether the worker's declared hours on the given date
// contain the [start, end) window. The window must sit entirely inside the
// day's working window; a job ending one minute past the declared end is not
// available. Break minutes reduce net working hours but do not block any
// particular clock time.
func IsAvailable(ws model.WeeklySchedule, date time.Time, start, end model.TimeOfDay) bool {
	if !start.Before(end) {
		return false
	}

	day := ws.Day(model.WeekdayOf(date))
	if !day.Available {
		return false
	}

	return day.Start.Minutes() <= start.Minutes() && end.Minutes() <= day.End.Minutes()
}

// IsAvailableWindow reports whether every per-day slice of the window fits
// inside the declared hours of its weekday. A window that runs past midnight
// needs the late day to extend to midnight, which declared hours never do,
// so overnight windows are unavailable by construction.
func IsAvailableWindow(ws model.WeeklySchedule, window model.TimeRange) bool {
	slices := window.SplitByDay()
	if len(slices) == 0 {
		return false
	}

	for _, slice := range slices {
		day := ws.Day(slice.Weekday())
		if !day.Available {
			return false
		}
		if slice.StartMin < day.Start.Minutes() || slice.EndMin > day.End.Minutes() {
			return false
		}
	}
	return true
}

// SlackMinutes returns the smallest margin between the window and the edges
// of the declared working hours across the days it touches. lead is the gap
// after the day's start, trail the gap before the day's end. ok is false
// when the window is not available at all.
func SlackMinutes(ws model.WeeklySchedule, window model.TimeRange) (lead, trail int, ok bool) {
	if !IsAvailableWindow(ws, window) {
		return 0, 0, false
	}

	first := true
	for _, slice := range window.SplitByDay() {
		day := ws.Day(slice.Weekday())
		sliceLead := slice.StartMin - day.Start.Minutes()
		sliceTrail := day.End.Minutes() - slice.EndMin

		if first || sliceLead < lead {
			lead = sliceLead
		}
		if first || sliceTrail < trail {
			trail = sliceTrail
		}
		first = false
	}
	return lead, trail, true
}
