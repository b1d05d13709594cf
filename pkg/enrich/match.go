package enrich

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// MatchThreshold is the minimum token-sort similarity (0-100) a search
// result title must reach against one of the account name fields before the
// result is trusted.
const MatchThreshold = 80

// Account name fields a title can match against
const (
	FieldName           = "Name"
	FieldRestaurantName = "Nom_du_restaurant__c"
)

// ValidationOutcome records how the sanity check went for one candidate
type ValidationOutcome struct {
	Matched      bool
	Score        int
	MatchedField string
}

// Similarity computes the token-sort ratio between two strings, in [0,100].
// Token-sort makes the comparison order-independent, so "Central Le" and
// "Le Central" score 100. Either side empty scores 0.
func Similarity(a, b string) int {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	return fuzzy.TokenSortRatio(a, b)
}

// ValidateMatch checks a search result title against the account's two name
// fields and accepts when the better of the two scores reaches the
// threshold.
func ValidateMatch(title, name, restaurantName string) ValidationOutcome {
	return decide(Similarity(title, name), Similarity(title, restaurantName))
}

// Ties favor the primary Name field.
func decide(nameScore, restaurantScore int) ValidationOutcome {
	score := nameScore
	field := FieldName
	if restaurantScore > nameScore {
		score = restaurantScore
		field = FieldRestaurantName
	}
	return ValidationOutcome{
		Matched:      score >= MatchThreshold,
		Score:        score,
		MatchedField: field,
	}
}
