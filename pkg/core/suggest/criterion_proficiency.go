package suggest

// ProficiencyCriterion scores the worker's qualification level for the
// requirement's role, stretched from the 1-5 level scale to 0-100:
//   - level 1 (novice)  -> 20
//   - level 3           -> 60
//   - level 5 (expert)  -> 100
//
// Eligibility has already filtered workers below the requirement's minimum
// level, so this criterion differentiates among the qualified.
type ProficiencyCriterion struct {
	weight float64
}

// NewProficiencyCriterion creates the criterion with the given weight
func NewProficiencyCriterion(weight float64) *ProficiencyCriterion {
	return &ProficiencyCriterion{weight: weight}
}

func (c *ProficiencyCriterion) Name() string {
	return "Proficiency"
}

func (c *ProficiencyCriterion) Weight() float64 {
	return c.weight
}

func (c *ProficiencyCriterion) Score(in ScoreInput) float64 {
	level := in.Level
	if level < 0 {
		level = 0
	}
	if level > MaxProficiencyLevel {
		level = MaxProficiencyLevel
	}
	return float64(level) / MaxProficiencyLevel * 100
}
