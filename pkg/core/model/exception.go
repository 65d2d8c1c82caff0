package model

import "time"

// ExceptionType classifies a schedule exception
type ExceptionType string

const (
	ExceptionVacation  ExceptionType = "vacation"
	ExceptionSick      ExceptionType = "sick"
	ExceptionPersonal  ExceptionType = "personal"
	ExceptionHoliday   ExceptionType = "holiday"
	ExceptionEmergency ExceptionType = "emergency"
)

// IsValid reports whether the type is one of the known exception types
func (t ExceptionType) IsValid() bool {
	switch t {
	case ExceptionVacation, ExceptionSick, ExceptionPersonal, ExceptionHoliday, ExceptionEmergency:
		return true
	}
	return false
}

// ExceptionStatus is the approval state of a schedule exception
type ExceptionStatus string

const (
	StatusPending  ExceptionStatus = "pending"
	StatusApproved ExceptionStatus = "approved"
	StatusRejected ExceptionStatus = "rejected"
)

// IsValid reports whether the status is one of the known states
func (s ExceptionStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsFinal reports whether the status can no longer change. A rejected or
// approved exception is never reopened; workers file a new one instead.
func (s ExceptionStatus) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ScheduleException is a dated departure from a worker's weekly schedule.
// Only approved exceptions block availability. StartDate and EndDate are
// inclusive calendar dates (UTC midnight, see DateOf). StartTime and EndTime
// are only meaningful when FullDay is false, in which case the exception
// blocks just that window on each covered day.
type ScheduleException struct {
	ID        string
	WorkerID  string
	Type      ExceptionType
	Title     string
	StartDate time.Time
	EndDate   time.Time
	FullDay   bool
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Status    ExceptionStatus
	Notes     string
	CreatedAt time.Time
}

// CoversDate reports whether the date falls inside the exception's range
func (e *ScheduleException) CoversDate(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(e.StartDate) && !d.After(e.EndDate)
}
