package db

import (
	"context"
	"time"
)

// WorkerStore defines the interface for worker database operations
type WorkerStore interface {
	GetWorkers(ctx context.Context) ([]Worker, error)
	GetWorker(ctx context.Context, workerID string) (*Worker, error)
	GetDaySchedules(ctx context.Context, workerID string) ([]DaySchedule, error)
	GetAllDaySchedules(ctx context.Context) ([]DaySchedule, error)
	GetQualifications(ctx context.Context, workerID string) ([]WorkerQualification, error)
	GetAllQualifications(ctx context.Context) ([]WorkerQualification, error)

	// ReplaceDaySchedules swaps in a full new weekly schedule. version must
	// match the worker's current ScheduleVersion or ErrStale is returned.
	ReplaceDaySchedules(ctx context.Context, workerID string, version int, schedules []DaySchedule) error
}

// ExceptionStore defines the interface for schedule exception database operations
type ExceptionStore interface {
	GetException(ctx context.Context, exceptionID string) (*ScheduleException, error)
	GetWorkerExceptions(ctx context.Context, workerID string) ([]ScheduleException, error)
	GetAllExceptions(ctx context.Context) ([]ScheduleException, error)
	InsertException(ctx context.Context, exception *ScheduleException) error

	// UpdateExceptionStatus moves a pending exception to the given status.
	// Returns ErrNotFound for an unknown ID and ErrStale when the exception
	// was decided by someone else first.
	UpdateExceptionStatus(ctx context.Context, exceptionID string, status string) error
}

// JobStore defines the interface for job database operations
type JobStore interface {
	GetJob(ctx context.Context, jobID string) (*Job, error)
	GetJobRequirements(ctx context.Context, jobID string) ([]JobRequirement, error)
	GetJobRoles(ctx context.Context) ([]JobRole, error)
}

// CrewStore defines the interface for crew database operations
type CrewStore interface {
	GetCrews(ctx context.Context) ([]Crew, error)
	GetCrewMembers(ctx context.Context) ([]CrewMember, error)
	GetCrewCapabilities(ctx context.Context) ([]CrewCapability, error)
}

// CommitmentStore defines the interface for commitment database operations
type CommitmentStore interface {
	GetWorkerCommitments(ctx context.Context, workerID string) ([]Commitment, error)
	GetCommitmentsBetween(ctx context.Context, start, end time.Time) ([]Commitment, error)
}

// SuggestionStore bundles everything suggestion generation reads
type SuggestionStore interface {
	WorkerStore
	ExceptionStore
	JobStore
	CrewStore
	CommitmentStore
}
