package suggest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/crewdeckhq/crewdeck/pkg/core/conflict"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/core/schedule"
)

// ScoredWorker is one worker's evaluation for one requirement slot
type ScoredWorker struct {
	WorkerID string
	Name     string
	RoleID   string
	Level    int

	// Score is the weighted composite on the 0-100 scale
	Score float64

	// Breakdown holds each criterion's raw 0-100 score by criterion name,
	// so a dispatcher can see why the composite came out as it did
	Breakdown map[string]float64

	// SuggestedRate is the higher of the worker's hourly rate and the
	// role's base rate
	SuggestedRate float64

	// IsLead marks the worker proposed to lead the job
	IsLead bool
}

// SkippedWorker records a worker excluded from scoring with the reason
type SkippedWorker struct {
	WorkerID string
	Name     string
	Reason   string
}

// evaluation is the outcome of checking one worker against one requirement.
// Exactly one of scored/skipped/reason is set: scored for eligible workers,
// skipped for workers that cannot be scored, reason for plain ineligibility.
type evaluation struct {
	workerID string
	scored   *ScoredWorker
	skipped  *SkippedWorker
	reason   string
}

// scorePools evaluates every worker against every requirement. Workers are
// scored concurrently; pools run into the hundreds and each evaluation walks
// the calendar. The merged pool is sorted by score then worker ID so the
// completion order of the goroutines never shows in the output.
//
// Returns one pool per requirement (same index order), the deduplicated
// skip list, and per-requirement ineligibility reasons keyed by worker ID.
func (e *Engine) scorePools() ([][]ScoredWorker, []SkippedWorker, []map[string]string) {
	requirements := e.input.Job.Requirements
	pools := make([][]ScoredWorker, len(requirements))
	reasons := make([]map[string]string, len(requirements))
	skippedByID := make(map[string]SkippedWorker)

	for ri, req := range requirements {
		role := e.roleByID[req.RoleID]

		results := make(chan evaluation, len(e.input.Workers))
		var wg sync.WaitGroup
		for wi := range e.input.Workers {
			wg.Add(1)
			go func(worker *model.Worker) {
				defer wg.Done()
				results <- e.evaluateWorker(worker, req, role)
			}(&e.input.Workers[wi])
		}
		wg.Wait()
		close(results)

		reasons[ri] = make(map[string]string)
		for eval := range results {
			switch {
			case eval.scored != nil:
				pools[ri] = append(pools[ri], *eval.scored)
			case eval.skipped != nil:
				skippedByID[eval.skipped.WorkerID] = *eval.skipped
			case eval.reason != "":
				reasons[ri][eval.workerID] = eval.reason
			}
		}

		sort.Slice(pools[ri], func(i, j int) bool {
			if pools[ri][i].Score != pools[ri][j].Score {
				return pools[ri][i].Score > pools[ri][j].Score
			}
			return pools[ri][i].WorkerID < pools[ri][j].WorkerID
		})
	}

	skipped := make([]SkippedWorker, 0, len(skippedByID))
	for _, sw := range skippedByID {
		skipped = append(skipped, sw)
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].WorkerID < skipped[j].WorkerID })

	return pools, skipped, reasons
}

// evaluateWorker checks one worker's eligibility for one requirement and
// scores them if eligible. It only reads from the snapshot, so concurrent
// calls are safe.
func (e *Engine) evaluateWorker(worker *model.Worker, req model.JobRequirement, role model.JobRole) evaluation {
	out := evaluation{workerID: worker.ID}

	if !worker.IsActive {
		out.reason = "worker is inactive"
		return out
	}

	qual, ok := worker.QualificationFor(req.RoleID)
	if !ok {
		out.reason = fmt.Sprintf("not qualified as %s", role.Name)
		return out
	}
	if qual.Level < req.MinLevel {
		out.reason = fmt.Sprintf("%s level %d below the required %d", role.Name, qual.Level, req.MinLevel)
		return out
	}

	lead, trail, available := schedule.SlackMinutes(worker.Schedule, e.input.Job.Window)
	if !available {
		out.reason = "job window falls outside declared weekly hours"
		return out
	}

	found, err := conflict.Find(worker, e.input.Job.Window, e.input.Commitments)
	if err != nil {
		// Input was validated before scoring started
		out.reason = err.Error()
		return out
	}
	if len(found) > 0 {
		out.reason = found[0].Description
		return out
	}

	rate := worker.HourlyRate
	if role.BaseRate > rate {
		rate = role.BaseRate
	}
	if rate <= 0 {
		out.skipped = &SkippedWorker{
			WorkerID: worker.ID,
			Name:     worker.Name,
			Reason:   "no hourly rate on file and the role has no base rate",
		}
		return out
	}

	in := ScoreInput{
		Worker:        worker,
		Role:          role,
		Job:           &e.input.Job,
		Level:         qual.Level,
		LeadSlackMin:  lead,
		TrailSlackMin: trail,
	}

	breakdown := make(map[string]float64, len(e.criteria))
	weighted := 0.0
	for _, criterion := range e.criteria {
		score := criterion.Score(in)
		breakdown[criterion.Name()] = score
		weighted += score * criterion.Weight()
	}

	out.scored = &ScoredWorker{
		WorkerID:      worker.ID,
		Name:          worker.Name,
		RoleID:        req.RoleID,
		Level:         qual.Level,
		Score:         weighted / e.totalWeight,
		Breakdown:     breakdown,
		SuggestedRate: rate,
	}
	return out
}
