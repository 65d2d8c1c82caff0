package suggest

import (
	"errors"
	"fmt"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

// ErrMalformedInput marks requests the engine refuses to score at all:
// inverted job windows, empty or contradictory requirements, references to
// unknown roles. Distinct from an empty result, which just means nobody
// qualified.
var ErrMalformedInput = errors.New("malformed suggestion input")

// Config adjusts how the engine scores and composes candidates
type Config struct {
	// Criteria to score workers with. Nil uses the default criterion set
	// with the built-in weights.
	Criteria []Criterion

	// MaxAlternates is how many disjoint individual bundles to compose
	// beyond the best one. Zero uses DefaultMaxAlternates; negative
	// disables alternates.
	MaxAlternates int
}

// Input is the read-only snapshot the engine works from. The engine never
// mutates it, so one snapshot can serve concurrent suggestion runs.
type Input struct {
	Job         model.JobData
	Roles       []model.JobRole
	Workers     []model.Worker
	Crews       []model.Crew
	Commitments []model.Commitment
}

// Result is the outcome of one suggestion run
type Result struct {
	// Candidates ranked best first. Empty when nobody qualified.
	Candidates []Candidate

	// Skipped lists workers excluded because they could not be scored,
	// e.g. no rate on file. Reported rather than silently dropped.
	Skipped []SkippedWorker
}

// Engine scores a worker pool against a job and composes ranked candidates
type Engine struct {
	criteria      []Criterion
	totalWeight   float64
	maxAlternates int
	input         Input
	roleByID      map[string]model.JobRole
}

// Suggest runs the full pipeline: validate, score the pools concurrently,
// compose individual and crew candidates, rank them.
func Suggest(cfg Config, input Input) (*Result, error) {
	engine, err := NewEngine(cfg, input)
	if err != nil {
		return nil, err
	}

	pools, skipped, reasons := engine.scorePools()
	candidates := engine.composeCandidates(pools, reasons)

	return &Result{
		Candidates: Rank(candidates),
		Skipped:    skipped,
	}, nil
}

// NewEngine validates the configuration and input and prepares an engine.
// All malformed-input failures surface here, before any scoring work.
func NewEngine(cfg Config, input Input) (*Engine, error) {
	roleByID := make(map[string]model.JobRole, len(input.Roles))
	for _, role := range input.Roles {
		roleByID[role.ID] = role
	}

	if err := validateInput(input, roleByID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	criteria := cfg.Criteria
	if len(criteria) == 0 {
		criteria = DefaultCriteria(Weights{}, 0)
	}

	totalWeight := 0.0
	for _, criterion := range criteria {
		if criterion.Weight() < 0 {
			return nil, fmt.Errorf("%w: criterion %s has a negative weight", ErrMalformedInput, criterion.Name())
		}
		totalWeight += criterion.Weight()
	}
	if totalWeight == 0 {
		return nil, fmt.Errorf("%w: criterion weights sum to zero", ErrMalformedInput)
	}

	maxAlternates := cfg.MaxAlternates
	if maxAlternates == 0 {
		maxAlternates = DefaultMaxAlternates
	} else if maxAlternates < 0 {
		maxAlternates = 0
	}

	return &Engine{
		criteria:      criteria,
		totalWeight:   totalWeight,
		maxAlternates: maxAlternates,
		input:         input,
		roleByID:      roleByID,
	}, nil
}

// validateInput rejects jobs the engine cannot meaningfully score
func validateInput(input Input, roleByID map[string]model.JobRole) error {
	if !input.Job.Window.IsValid() {
		return fmt.Errorf("job window end must be after start")
	}
	if len(input.Job.Requirements) == 0 {
		return fmt.Errorf("job has no staffing requirements")
	}

	seen := make(map[string]bool)
	for _, req := range input.Job.Requirements {
		if _, ok := roleByID[req.RoleID]; !ok {
			return fmt.Errorf("requirement references unknown role %q", req.RoleID)
		}
		if seen[req.RoleID] {
			return fmt.Errorf("duplicate requirement for role %q", req.RoleID)
		}
		seen[req.RoleID] = true

		if req.Quantity < 1 {
			return fmt.Errorf("requirement for role %q has quantity %d", req.RoleID, req.Quantity)
		}
		// MinLevel 0 means the requirement sets no minimum
		if req.MinLevel < 0 || req.MinLevel > MaxProficiencyLevel {
			return fmt.Errorf("requirement for role %q has minimum level %d outside 0-%d",
				req.RoleID, req.MinLevel, MaxProficiencyLevel)
		}
	}
	return nil
}
