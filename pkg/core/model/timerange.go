package model

import "time"

// TimeRange is a half-open interval [Start, End). Two ranges that merely
// touch at an endpoint do not overlap, so a job ending at 12:00 and one
// starting at 12:00 can both be assigned to the same worker.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the range has positive length
func (r TimeRange) IsValid() bool {
	return r.End.After(r.Start)
}

// Overlaps reports whether two half-open ranges share any time
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Hours returns the length of the range in fractional hours
func (r TimeRange) Hours() float64 {
	return r.Duration().Hours()
}

// DateOf strips the time component, keeping the wall-clock calendar date.
// The result is anchored at UTC midnight so dates compare with Equal.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow is the portion of a TimeRange that falls on a single calendar
// day, expressed in minutes from that day's midnight. EndMin is exclusive
// and may be MinutesPerDay when the range runs through midnight.
type DayWindow struct {
	Date     time.Time
	StartMin int
	EndMin   int
}

// Weekday returns the Monday-first weekday of the window's date
func (w DayWindow) Weekday() Weekday {
	return WeekdayOf(w.Date)
}

// OverlapsMinutes reports whether [startMin, endMin) overlaps the window
func (w DayWindow) OverlapsMinutes(startMin, endMin int) bool {
	return w.StartMin < endMin && startMin < w.EndMin
}

// SplitByDay slices the range into per-day windows. A range ending exactly
// at midnight does not produce a window on the following day. The split reads
// wall-clock fields only, so the range's location never shifts the dates.
func (r TimeRange) SplitByDay() []DayWindow {
	if !r.IsValid() {
		return nil
	}

	start := wallClock(r.Start)
	end := wallClock(r.End)

	var windows []DayWindow
	for day := DateOf(start); day.Before(end); day = day.AddDate(0, 0, 1) {
		window := DayWindow{Date: day, StartMin: 0, EndMin: MinutesPerDay}
		if day.Equal(DateOf(start)) {
			window.StartMin = minuteOfDay(start)
		}
		if day.Equal(DateOf(end)) {
			window.EndMin = minuteOfDay(end)
		}
		windows = append(windows, window)
	}
	return windows
}

// wallClock re-anchors a timestamp's wall-clock reading in UTC, dropping
// seconds. Schedule arithmetic works at minute precision.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// minuteOfDay returns the wall-clock minute offset of a timestamp
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
