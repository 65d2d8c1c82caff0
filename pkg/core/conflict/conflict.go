package conflict

import (
	"errors"
	"fmt"
	"time"

	"github.com/crewdeckhq/crewdeck/pkg/core/exception"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// Kind classifies what a proposed assignment collides with
type Kind string

const (
	// KindException marks a collision with an approved schedule exception
	KindException Kind = "exception"

	// KindCommitment marks a collision with an existing job commitment
	KindCommitment Kind = "commitment"

	// KindUnsatisfiableRole marks a staffing requirement no candidate pool
	// could fill. Emitted during suggestion composition, not by Find.
	KindUnsatisfiableRole Kind = "unsatisfiable_role"
)

// Conflict describes one reason a worker cannot take a window
type Conflict struct {
	Kind        Kind
	Ref         string    // ID of the exception, commitment or role involved
	Date        time.Time // first affected calendar date
	Description string
}

// Find reports everything blocking the worker from the window: approved
// schedule exceptions and existing commitments. Both checks always run, so a
// worker who is on vacation and double-booked gets both conflicts reported
// in one pass. An empty result means the window is clear.
//
// Commitments belonging to other workers are ignored. An error is returned
// only for malformed input, never for a full calendar.
func Find(worker *model.Worker, window model.TimeRange, commitments []model.Commitment) ([]Conflict, error) {
	if worker == nil {
		return nil, errors.New("worker is required")
	}
	if !window.IsValid() {
		return nil, fmt.Errorf("invalid window: end %s is not after start %s",
			window.End.Format(time.RFC3339), window.Start.Format(time.RFC3339))
	}

	var conflicts []Conflict

	for _, ex := range worker.Exceptions {
		if !exception.BlocksWindow(ex, window) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Kind:        KindException,
			Ref:         ex.ID,
			Date:        firstBlockedDate(ex, window),
			Description: describeException(ex),
		})
	}

	for _, commitment := range commitments {
		if commitment.WorkerID != worker.ID {
			continue
		}
		if !commitment.Window.Overlaps(window) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Kind: KindCommitment,
			Ref:  commitment.ID,
			Date: model.DateOf(commitment.Window.Start),
			Description: fmt.Sprintf("already booked on job %s from %s to %s",
				commitment.JobID,
				commitment.Window.Start.Format("2006-01-02 15:04"),
				commitment.Window.End.Format("2006-01-02 15:04")),
		})
	}

	return conflicts, nil
}

// firstBlockedDate returns the earliest date in the window the exception hits
func firstBlockedDate(ex model.ScheduleException, window model.TimeRange) time.Time {
	for _, slice := range window.SplitByDay() {
		if !ex.CoversDate(slice.Date) {
			continue
		}
		if ex.FullDay || slice.OverlapsMinutes(ex.StartTime.Minutes(), ex.EndTime.Minutes()) {
			return slice.Date
		}
	}
	return model.DateOf(window.Start)
}

func describeException(ex model.ScheduleException) string {
	if ex.FullDay {
		return fmt.Sprintf("%s %q blocks %s to %s",
			ex.Type, ex.Title,
			ex.StartDate.Format("2006-01-02"), ex.EndDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s %q blocks %s-%s between %s and %s",
		ex.Type, ex.Title,
		ex.StartTime, ex.EndTime,
		ex.StartDate.Format("2006-01-02"), ex.EndDate.Format("2006-01-02"))
}
