package suggest

// RatingCriterion scores the worker's customer rating, stretched from the
// 0-5 star scale to 0-100. A 4.2-star worker scores 84. Ratings outside the
// scale are clamped rather than rejected; a bad import should not crash a
// suggestion run.
type RatingCriterion struct {
	weight float64
}

// NewRatingCriterion creates the criterion with the given weight
func NewRatingCriterion(weight float64) *RatingCriterion {
	return &RatingCriterion{weight: weight}
}

func (c *RatingCriterion) Name() string {
	return "Rating"
}

func (c *RatingCriterion) Weight() float64 {
	return c.weight
}

func (c *RatingCriterion) Score(in ScoreInput) float64 {
	rating := in.Worker.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > MaxRating {
		rating = MaxRating
	}
	return rating / MaxRating * 100
}
