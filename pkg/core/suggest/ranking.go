package suggest

import "sort"

// Rank orders candidates best first: higher total score wins, cheaper
// estimated cost breaks score ties, and composition order breaks exact
// ties so equal candidates keep a stable order between runs.
func Rank(candidates []Candidate) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		if ranked[i].EstimatedCost != ranked[j].EstimatedCost {
			return ranked[i].EstimatedCost < ranked[j].EstimatedCost
		}
		return ranked[i].Seq < ranked[j].Seq
	})

	return ranked
}
