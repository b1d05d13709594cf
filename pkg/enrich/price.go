package enrich

import (
	"regexp"
	"strconv"
	"strings"
)

// Price tier breakpoints in the account's currency. A raw amount below
// tier2Min is "$", below tier3Min "$$", below tier4Min "$$$", else "$$$$".
const (
	tier2Min = 20.0
	tier3Min = 30.0
	tier4Min = 50.0
)

var (
	// Matches ranges like "20-30" or "20 – 30" (hyphen or en-dash)
	priceRangeRe  = regexp.MustCompile(`(\d+)\s*[–-]\s*(\d+)`)
	priceNumberRe = regexp.MustCompile(`\d+`)
)

// CleanPrice normalizes a raw price token into the Salesforce picklist
// values "$" through "$$$$". Handles raw amounts ("€20"), ranges ("€20–30",
// averaged), level digits 1-4, and literal "$$" style tokens. Returns ""
// when the input can't be interpreted.
func CleanPrice(raw string) string {
	if raw == "" {
		return ""
	}

	var val float64
	parsed := false

	if m := priceRangeRe.FindStringSubmatch(raw); m != nil {
		low, _ := strconv.ParseFloat(m[1], 64)
		high, _ := strconv.ParseFloat(m[2], 64)
		val = (low + high) / 2
		parsed = true
	} else if m := priceNumberRe.FindString(raw); m != "" {
		val, _ = strconv.ParseFloat(m, 64)
		parsed = true
	}

	if !parsed {
		// No number at all; accept a literal "$".."$$$$" token
		count := strings.Count(raw, "$")
		if count >= 1 && count <= 4 {
			return strings.Repeat("$", count)
		}
		return ""
	}

	// 1-4 is already a price level rather than an amount
	if val >= 1 && val <= 4 {
		return strings.Repeat("$", int(val))
	}

	switch {
	case val < tier2Min:
		return "$"
	case val < tier3Min:
		return "$$"
	case val < tier4Min:
		return "$$$"
	default:
		return "$$$$"
	}
}

// FormatTypes flattens the category list into the single display string
// Salesforce stores, e.g. ["French restaurant", "Bistro"] ->
// "French restaurant, Bistro".
func FormatTypes(types []string) string {
	return strings.Join(types, ", ")
}
