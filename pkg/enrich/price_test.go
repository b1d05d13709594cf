package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single amount", "€20", "$$"},
		{"degenerate range equals point", "€20-20", "$$"},
		{"range averages to mean", "€20-30", "$$"},
		{"range with en-dash", "€20–30", "$$"},
		{"range mean lands in third tier", "€25-35", "$$$"},
		{"range mean lands in third tier upper", "€30-50", "$$$"},
		{"below first breakpoint", "€12", "$"},
		{"first breakpoint boundary", "€19", "$"},
		{"second tier lower bound", "€20", "$$"},
		{"third tier lower bound", "€30", "$$$"},
		{"fourth tier lower bound", "€50", "$$$$"},
		{"well above top breakpoint", "€120", "$$$$"},
		{"level digit passes through", "3", "$$$"},
		{"dollar token passes through", "$$", "$$"},
		{"too many dollar signs", "$$$$$", ""},
		{"unparseable", "not-a-price", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPrice(tt.in))
		})
	}
}

func TestCleanPriceRangeWithSpaces(t *testing.T) {
	assert.Equal(t, "$$", CleanPrice("€20 – 30"))
	assert.Equal(t, "$$", CleanPrice("20 - 30"))
}

func TestFormatTypes(t *testing.T) {
	assert.Equal(t, "", FormatTypes(nil))
	assert.Equal(t, "", FormatTypes([]string{}))
	assert.Equal(t, "Restaurant", FormatTypes([]string{"Restaurant"}))
	assert.Equal(t, "Restaurant, Cafe", FormatTypes([]string{"Restaurant", "Cafe"}))
	assert.Equal(t, "French restaurant, Bistro", FormatTypes([]string{"French restaurant", "Bistro"}))
}
