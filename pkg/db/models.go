package db

import "time"

// Worker represents a database worker record. ScheduleVersion increments on
// every schedule replace and guards concurrent edits.
type Worker struct {
	ID              string
	Name            string
	Email           string
	Rating          float64
	HourlyRate      float64
	IsActive        bool
	ScheduleVersion int
}

// DaySchedule represents one weekday row of a worker's recurring schedule.
// Times are minutes since midnight; weekday 0 is Monday.
type DaySchedule struct {
	WorkerID     string
	Weekday      int
	Available    bool
	StartMinutes int
	EndMinutes   int
	BreakMinutes int
}

// ScheduleException represents a database schedule exception record.
// StartMinutes and EndMinutes only apply when FullDay is false.
type ScheduleException struct {
	ID           string
	WorkerID     string
	Type         string
	Title        string
	StartDate    time.Time
	EndDate      time.Time
	FullDay      bool
	StartMinutes int
	EndMinutes   int
	Status       string
	Notes        string
	CreatedAt    time.Time
}

// JobRole represents a database job role record
type JobRole struct {
	ID       string
	Name     string
	BaseRate float64
}

// WorkerQualification represents a worker's proficiency level for a role
type WorkerQualification struct {
	WorkerID string
	RoleID   string
	Level    int
}

// Crew represents a database crew record. LeadWorkerID is empty when the
// crew has no standing lead.
type Crew struct {
	ID           string
	Name         string
	LeadWorkerID string
}

// CrewMember represents a crew membership record
type CrewMember struct {
	CrewID   string
	WorkerID string
}

// CrewCapability represents how many slots of a role a crew can staff.
// Level 0 means the crew declares no proficiency for the role.
type CrewCapability struct {
	CrewID   string
	RoleID   string
	Capacity int
	Level    int
}

// Job represents a database job record
type Job struct {
	ID       string
	Title    string
	Location string
	StartAt  time.Time
	EndAt    time.Time
}

// JobRequirement represents one staffing line of a job
type JobRequirement struct {
	JobID    string
	RoleID   string
	Quantity int
	MinLevel int
}

// Commitment represents a worker's existing booking on a job
type Commitment struct {
	ID       string
	WorkerID string
	JobID    string
	StartAt  time.Time
	EndAt    time.Time
	Note     string
}
