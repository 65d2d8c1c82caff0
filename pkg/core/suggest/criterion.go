package suggest

import "github.com/crewdeckhq/crewdeck/pkg/core/model"

// ScoreInput carries everything a criterion can see when scoring one worker
// against one staffing requirement of a job.
type ScoreInput struct {
	Worker *model.Worker
	Role   model.JobRole
	Job    *model.JobData

	// Level is the worker's proficiency level for the requirement's role
	Level int

	// LeadSlackMin and TrailSlackMin are the smallest margins between the
	// job window and the edges of the worker's declared day, across every
	// day the job touches. Workers only reach scoring after the window
	// check, so both are always >= 0.
	LeadSlackMin  int
	TrailSlackMin int
}

// Criterion scores one facet of worker-to-job fit on a 0-100 scale. The
// weighted criterion scores combine into the worker's composite score,
// normalized by the total weight so any weight configuration lands back on
// the 0-100 scale.
type Criterion interface {
	Name() string
	Weight() float64
	Score(in ScoreInput) float64
}
