package model

// DayScheduleDraft is the unvalidated form of a single day's hours as
// submitted by a worker. Times are "HH:MM" strings until validation parses
// them.
type DayScheduleDraft struct {
	Available    bool   `yaml:"available"`
	Start        string `yaml:"start,omitempty"`
	End          string `yaml:"end,omitempty"`
	BreakMinutes int    `yaml:"breakMinutes,omitempty"`
}

// WeeklyScheduleDraft is the unvalidated form of a weekly schedule, keyed by
// weekday name ("monday" ... "sunday"). Unknown keys are rejected during
// validation rather than silently dropped.
type WeeklyScheduleDraft map[string]DayScheduleDraft

// ExceptionDraft is the unvalidated form of a schedule exception request.
// Dates are "2006-01-02" strings and times "HH:MM" strings until validation
// parses them.
type ExceptionDraft struct {
	Type      string `yaml:"type"`
	Title     string `yaml:"title"`
	StartDate string `yaml:"startDate"`
	EndDate   string `yaml:"endDate"`
	FullDay   bool   `yaml:"fullDay"`
	StartTime string `yaml:"startTime,omitempty"`
	EndTime   string `yaml:"endTime,omitempty"`
	Notes     string `yaml:"notes,omitempty"`
}
