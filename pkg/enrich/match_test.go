package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdenticalStrings(t *testing.T) {
	assert.Equal(t, 100, Similarity("Le Central", "Le Central"))
	assert.Equal(t, 100, Similarity("Chez Marcel", "Chez Marcel"))
}

func TestSimilarityEmptyInput(t *testing.T) {
	assert.Equal(t, 0, Similarity("", "Le Central"))
	assert.Equal(t, 0, Similarity("Le Central", ""))
	assert.Equal(t, 0, Similarity("", ""))
	assert.Equal(t, 0, Similarity("   ", "Le Central"))
}

func TestSimilarityIgnoresTokenOrder(t *testing.T) {
	assert.Equal(t, 100, Similarity("Restaurant Le Central", "Le Central Restaurant"))
}

func TestSimilarityUnrelatedStringsScoreLow(t *testing.T) {
	score := Similarity("Le Central", "Pizzeria Napoli Express")
	assert.Less(t, score, MatchThreshold)
}

func TestDecideThresholdBoundaries(t *testing.T) {
	tests := []struct {
		score   int
		matched bool
	}{
		{79, false},
		{80, true},
		{81, true},
	}
	for _, tt := range tests {
		outcome := decide(tt.score, 0)
		assert.Equal(t, tt.matched, outcome.Matched, "score %d", tt.score)
		assert.Equal(t, tt.score, outcome.Score)
	}
}

func TestDecideHigherScoreWins(t *testing.T) {
	outcome := decide(70, 90)
	assert.True(t, outcome.Matched)
	assert.Equal(t, 90, outcome.Score)
	assert.Equal(t, FieldRestaurantName, outcome.MatchedField)

	outcome = decide(95, 85)
	assert.True(t, outcome.Matched)
	assert.Equal(t, 95, outcome.Score)
	assert.Equal(t, FieldName, outcome.MatchedField)
}

func TestDecideTieFavorsPrimaryName(t *testing.T) {
	outcome := decide(85, 85)
	assert.Equal(t, FieldName, outcome.MatchedField)
	assert.Equal(t, 85, outcome.Score)
}

func TestValidateMatchBothNamesEmpty(t *testing.T) {
	outcome := ValidateMatch("Le Central", "", "")
	assert.False(t, outcome.Matched)
	assert.Equal(t, 0, outcome.Score)
	assert.Equal(t, FieldName, outcome.MatchedField)
}

func TestValidateMatchAlternateName(t *testing.T) {
	outcome := ValidateMatch("Restaurant Central", "Totally Unrelated Bakery", "Restaurant Central")
	assert.True(t, outcome.Matched)
	assert.Equal(t, 100, outcome.Score)
	assert.Equal(t, FieldRestaurantName, outcome.MatchedField)
}
