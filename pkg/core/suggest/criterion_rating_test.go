package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewdeckhq/crewdeck/pkg/core/model"
)

func TestRatingCriterion_Score(t *testing.T) {
	criterion := NewRatingCriterion(WeightRating)

	tests := []struct {
		name     string
		rating   float64
		expected float64
	}{
		{name: "unrated worker", rating: 0, expected: 0},
		{name: "mid scale", rating: 2.5, expected: 50},
		{name: "4.2 stars", rating: 4.2, expected: 84},
		{name: "top rated", rating: 5.0, expected: 100},
		{name: "clamped above scale", rating: 6.3, expected: 100},
		{name: "clamped below scale", rating: -1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := criterion.Score(ScoreInput{Worker: &model.Worker{Rating: tt.rating}})
			assert.InDelta(t, tt.expected, score, 0.001)
		})
	}
}

func TestProficiencyCriterion_Score(t *testing.T) {
	criterion := NewProficiencyCriterion(WeightProficiency)

	tests := []struct {
		name     string
		level    int
		expected float64
	}{
		{name: "novice", level: 1, expected: 20},
		{name: "journeyman", level: 3, expected: 60},
		{name: "expert", level: 5, expected: 100},
		{name: "clamped above scale", level: 7, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := criterion.Score(ScoreInput{Level: tt.level})
			assert.InDelta(t, tt.expected, score, 0.001)
		})
	}
}
