package suggest

// AvailabilityFitCriterion scores how comfortably the job window sits inside
// the worker's declared working day.
//
// The score is driven by the smaller of the two margins between the job
// window and the day's edges, linear up to the comfort slack:
//   - job flush against a shift edge (0 margin)     -> 0
//   - 60 min margin with a 120 min comfort slack    -> 50
//   - at least the comfort slack on both sides      -> 100
//
// A worker whose day only just contains the job is still available, but any
// overrun lands outside their declared hours, so edge assignments score low.
type AvailabilityFitCriterion struct {
	weight              float64
	comfortSlackMinutes int
}

// NewAvailabilityFitCriterion creates the criterion with the given weight
// and saturation margin
func NewAvailabilityFitCriterion(weight float64, comfortSlackMinutes int) *AvailabilityFitCriterion {
	return &AvailabilityFitCriterion{
		weight:              weight,
		comfortSlackMinutes: comfortSlackMinutes,
	}
}

func (c *AvailabilityFitCriterion) Name() string {
	return "AvailabilityFit"
}

func (c *AvailabilityFitCriterion) Weight() float64 {
	return c.weight
}

func (c *AvailabilityFitCriterion) Score(in ScoreInput) float64 {
	slack := in.LeadSlackMin
	if in.TrailSlackMin < slack {
		slack = in.TrailSlackMin
	}

	if slack <= 0 {
		return 0
	}
	if slack >= c.comfortSlackMinutes {
		return 100
	}
	return 100 * float64(slack) / float64(c.comfortSlackMinutes)
}
