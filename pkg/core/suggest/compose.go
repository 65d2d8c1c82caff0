package suggest

import (
	"fmt"
	"strings"

	"github.com/crewdeckhq/crewdeck/pkg/core/conflict"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// Candidate is one proposed staffing of the job: either an ad hoc bundle of
// the best individually scored workers, or a pre-formed crew assigned as a
// unit. A candidate that cannot fully staff a requirement still appears,
// carrying an unsatisfiable-role conflict, so shortfalls are visible instead
// of silently dropped.
type Candidate struct {
	// Seq is the composition order, the final ranking tiebreak
	Seq int

	// CrewID and CrewName identify the crew for crew candidates; both are
	// empty for ad hoc bundles
	CrewID   string
	CrewName string

	Workers   []ScoredWorker
	Conflicts []conflict.Conflict

	// TotalScore is the mean member score over all required slots, so a
	// candidate missing a slot scores as if the slot contributed zero
	TotalScore float64

	// EstimatedCost sums each member's suggested rate over the job's hours
	EstimatedCost float64
}

// composeCandidates builds the candidate list from the scored pools: the
// best individual bundle, up to maxAlternates further bundles disjoint from
// the earlier ones, then one candidate per crew that can staff at least one
// slot. Crews draw from the full pool rather than the leftovers, so they
// compete with the bundles on score.
func (e *Engine) composeCandidates(pools [][]ScoredWorker, reasons []map[string]string) []Candidate {
	var candidates []Candidate

	used := make(map[string]bool)
	for alt := 0; alt <= e.maxAlternates; alt++ {
		bundle, conflicts := e.pickBundle(pools, used)
		if len(bundle) == 0 {
			break
		}
		for _, sw := range bundle {
			used[sw.WorkerID] = true
		}
		candidates = append(candidates, e.newCandidate(len(candidates), nil, bundle, conflicts))
	}

	for ci := range e.input.Crews {
		crew := &e.input.Crews[ci]
		bundle, conflicts := e.pickCrewBundle(pools, reasons, crew)
		if len(bundle) == 0 {
			continue
		}
		candidates = append(candidates, e.newCandidate(len(candidates), crew, bundle, conflicts))
	}

	return candidates
}

// pickBundle fills each requirement's slots with the best workers not yet
// claimed by an earlier bundle. A worker fills at most one slot within the
// bundle even when qualified for several roles.
func (e *Engine) pickBundle(pools [][]ScoredWorker, used map[string]bool) ([]ScoredWorker, []conflict.Conflict) {
	var bundle []ScoredWorker
	var conflicts []conflict.Conflict
	taken := make(map[string]bool)

	for ri, req := range e.input.Job.Requirements {
		assigned := 0
		for _, sw := range pools[ri] {
			if assigned == req.Quantity {
				break
			}
			if used[sw.WorkerID] || taken[sw.WorkerID] {
				continue
			}
			bundle = append(bundle, sw)
			taken[sw.WorkerID] = true
			assigned++
		}

		if assigned < req.Quantity {
			role := e.roleByID[req.RoleID]
			conflicts = append(conflicts, e.shortfallConflict(req, fmt.Sprintf(
				"only %d of %d required %s workers available", assigned, req.Quantity, role.Name)))
		}
	}

	return bundle, conflicts
}

// pickCrewBundle staffs the job from a single crew. A requirement is only
// staffed up to the crew's declared capability for the role, never when the
// declared proficiency sits below the requirement's minimum, and only with
// members who passed individual eligibility. Every shortfall becomes a
// conflict naming the binding constraint, including which members were
// unavailable and why.
func (e *Engine) pickCrewBundle(pools [][]ScoredWorker, reasons []map[string]string, crew *model.Crew) ([]ScoredWorker, []conflict.Conflict) {
	var bundle []ScoredWorker
	var conflicts []conflict.Conflict
	taken := make(map[string]bool)

	for ri, req := range e.input.Job.Requirements {
		role := e.roleByID[req.RoleID]
		capability, hasCapability := crew.CapabilityFor(req.RoleID)
		levelTooLow := capability.Level > 0 && capability.Level < req.MinLevel

		limit := req.Quantity
		if capability.Capacity < limit {
			limit = capability.Capacity
		}
		if levelTooLow {
			limit = 0
		}

		assigned := 0
		for _, sw := range pools[ri] {
			if assigned == limit {
				break
			}
			if !crew.HasMember(sw.WorkerID) || taken[sw.WorkerID] {
				continue
			}
			bundle = append(bundle, sw)
			taken[sw.WorkerID] = true
			assigned++
		}

		if assigned < req.Quantity {
			switch {
			case !hasCapability:
				conflicts = append(conflicts, e.shortfallConflict(req, fmt.Sprintf(
					"crew %s has no %s capability", crew.Name, role.Name)))
			case levelTooLow:
				conflicts = append(conflicts, e.shortfallConflict(req, fmt.Sprintf(
					"crew %s covers %s at level %d, below the required %d",
					crew.Name, role.Name, capability.Level, req.MinLevel)))
			case capability.Capacity < req.Quantity:
				conflicts = append(conflicts, e.shortfallConflict(req, fmt.Sprintf(
					"crew %s capacity %d is below the %d required for %s",
					crew.Name, capability.Capacity, req.Quantity, role.Name)))
			default:
				detail := fmt.Sprintf("only %d of %d required %s workers available from crew %s",
					assigned, req.Quantity, role.Name, crew.Name)
				if blocked := blockedMemberNotes(crew, reasons[ri], taken); blocked != "" {
					detail += " (" + blocked + ")"
				}
				conflicts = append(conflicts, e.shortfallConflict(req, detail))
			}
		}
	}

	return bundle, conflicts
}

// blockedMemberNotes explains which crew members were ineligible, in member
// list order
func blockedMemberNotes(crew *model.Crew, reqReasons map[string]string, taken map[string]bool) string {
	var notes []string
	for _, memberID := range crew.MemberIDs {
		if taken[memberID] {
			continue
		}
		if reason, ok := reqReasons[memberID]; ok {
			notes = append(notes, fmt.Sprintf("%s: %s", memberID, reason))
		}
	}
	return strings.Join(notes, "; ")
}

func (e *Engine) shortfallConflict(req model.JobRequirement, description string) conflict.Conflict {
	return conflict.Conflict{
		Kind:        conflict.KindUnsatisfiableRole,
		Ref:         req.RoleID,
		Date:        model.DateOf(e.input.Job.Window.Start),
		Description: description,
	}
}

// newCandidate finalizes a staffed bundle: picks the lead, totals the score
// over all required slots and prices the assignment.
func (e *Engine) newCandidate(seq int, crew *model.Crew, workers []ScoredWorker, conflicts []conflict.Conflict) Candidate {
	leadIdx := -1
	if crew != nil && crew.LeadWorkerID != "" {
		for i, sw := range workers {
			if sw.WorkerID == crew.LeadWorkerID {
				leadIdx = i
				break
			}
		}
	}
	if leadIdx == -1 {
		// Highest score leads, lowest worker ID on ties
		for i, sw := range workers {
			if leadIdx == -1 ||
				sw.Score > workers[leadIdx].Score ||
				(sw.Score == workers[leadIdx].Score && sw.WorkerID < workers[leadIdx].WorkerID) {
				leadIdx = i
			}
		}
	}
	if leadIdx >= 0 {
		workers[leadIdx].IsLead = true
	}

	hours := e.input.Job.Window.Hours()
	totalScore := 0.0
	cost := 0.0
	for _, sw := range workers {
		totalScore += sw.Score
		cost += sw.SuggestedRate * hours
	}

	candidate := Candidate{
		Seq:           seq,
		Workers:       workers,
		Conflicts:     conflicts,
		TotalScore:    totalScore / float64(e.input.Job.TotalSlots()),
		EstimatedCost: cost,
	}
	if crew != nil {
		candidate.CrewID = crew.ID
		candidate.CrewName = crew.Name
	}
	return candidate
}
