package suggest

// Built-in criterion weights for composite worker scoring
const (
	// WeightAvailabilityFit is the weight of how comfortably the job window
	// sits inside the worker's declared day. The heaviest of the three:
	// an assignment that squeezes against a worker's shift edges is an
	// overtime risk even when the worker is technically available.
	WeightAvailabilityFit = 0.40

	// WeightRating is the weight of the worker's 0-5 customer rating.
	WeightRating = 0.35

	// WeightProficiency is the weight of the worker's qualification level
	// for the required role.
	WeightProficiency = 0.25
)

// Scoring limits
const (
	// MaxRating is the top of the worker rating scale
	MaxRating = 5.0

	// MaxProficiencyLevel is the top qualification level
	MaxProficiencyLevel = 5

	// DefaultComfortSlackMinutes is the margin to the worker's shift edges
	// at which availability fit saturates at 100. Inside the margin the fit
	// drops linearly toward 0 at the edge.
	DefaultComfortSlackMinutes = 120

	// DefaultMaxAlternates is how many extra disjoint individual bundles
	// are composed beyond the best one.
	DefaultMaxAlternates = 2
)

// Weights configures the built-in criteria. Zero values fall back to the
// built-in defaults, so the zero Weights gives the standard 0.40/0.35/0.25
// split.
type Weights struct {
	AvailabilityFit float64
	Rating          float64
	Proficiency     float64
}

// DefaultCriteria builds the standard criterion set with the given weights
func DefaultCriteria(weights Weights, comfortSlackMinutes int) []Criterion {
	if weights.AvailabilityFit == 0 {
		weights.AvailabilityFit = WeightAvailabilityFit
	}
	if weights.Rating == 0 {
		weights.Rating = WeightRating
	}
	if weights.Proficiency == 0 {
		weights.Proficiency = WeightProficiency
	}
	if comfortSlackMinutes <= 0 {
		comfortSlackMinutes = DefaultComfortSlackMinutes
	}

	return []Criterion{
		NewAvailabilityFitCriterion(weights.AvailabilityFit, comfortSlackMinutes),
		NewRatingCriterion(weights.Rating),
		NewProficiencyCriterion(weights.Proficiency),
	}
}
