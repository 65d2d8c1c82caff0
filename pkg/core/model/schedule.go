package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekday indexes the days of a weekly schedule, Monday first
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// IsValid reports whether the weekday is within Monday-Sunday
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday parses a lowercase or mixed-case weekday name
func ParseWeekday(name string) (Weekday, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == lower {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// WeekdayOf converts a timestamp's calendar day to a Monday-first Weekday
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday counts Sunday as 0
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// DaySchedule is the declared working window for one day of the week.
// Start and End are only meaningful when Available is true. BreakMinutes is
// unpaid break time subtracted from the net working hours; it does not block
// any specific clock time within the day.
type DaySchedule struct {
	Available    bool
	Start        TimeOfDay
	End          TimeOfDay
	BreakMinutes int
}

// SpanMinutes returns the gross length of the working window
func (d DaySchedule) SpanMinutes() int {
	if !d.Available {
		return 0
	}
	return d.End.Minutes() - d.Start.Minutes()
}

// NetMinutes returns working minutes after subtracting the break
func (d DaySchedule) NetMinutes() int {
	if !d.Available {
		return 0
	}
	net := d.SpanMinutes() - d.BreakMinutes
	if net < 0 {
		return 0
	}
	return net
}

// WeeklySchedule holds one DaySchedule per weekday, Monday first.
// The fixed array shape means a schedule always covers exactly seven days;
// days the worker does not work are present with Available=false.
type WeeklySchedule [7]DaySchedule

// Day returns the schedule for the given weekday
func (ws WeeklySchedule) Day(d Weekday) DaySchedule {
	return ws[d]
}

// NetWeekMinutes returns the net working minutes across the whole week
func (ws WeeklySchedule) NetWeekMinutes() int {
	total := 0
	for _, day := range ws {
		total += day.NetMinutes()
	}
	return total
}
