package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayScheduleNetMinutes(t *testing.T) {
	day := DaySchedule{
		Available:    true,
		Start:        TimeOfDay{Hour: 8, Minute: 0},
		End:          TimeOfDay{Hour: 17, Minute: 0},
		BreakMinutes: 60,
	}

	// 9h span minus 1h break = 8h
	assert.Equal(t, 9*60, day.SpanMinutes())
	assert.Equal(t, 8*60, day.NetMinutes())

	off := DaySchedule{Available: false}
	assert.Equal(t, 0, off.SpanMinutes())
	assert.Equal(t, 0, off.NetMinutes())
}

func TestWeeklyScheduleNetWeekMinutes(t *testing.T) {
	var ws WeeklySchedule
	for d := Monday; d <= Friday; d++ {
		ws[d] = DaySchedule{
			Available:    true,
			Start:        TimeOfDay{Hour: 9, Minute: 0},
			End:          TimeOfDay{Hour: 17, Minute: 30},
			BreakMinutes: 30,
		}
	}

	// 5 days of 8.5h span minus 30min break = 5 * 8h
	assert.Equal(t, 5*8*60, ws.NetWeekMinutes())
	assert.False(t, ws.Day(Saturday).Available)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Monday")
	assert.NoError(t, err)
	assert.Equal(t, Monday, d)

	d, err = ParseWeekday(" sunday ")
	assert.NoError(t, err)
	assert.Equal(t, Sunday, d)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}
