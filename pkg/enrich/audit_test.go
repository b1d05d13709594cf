package enrich

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenchef/salesforce-data-utils/pkg/serpapi"
)

func TestAuditLogWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enrichment.csv")
	log, err := NewAuditLog(path)
	require.NoError(t, err)

	enriched := Result{
		AccountID:   "001XX0000001",
		AccountName: "Le Central",
		Status:      StatusEnriched,
		Message:     "Enrichment successful",
		Place: &serpapi.Place{
			Title:   "Le Central",
			Address: "12 Rue X, Paris",
			PlaceID: "ChIJabc",
			Rating:  4.5,
			Reviews: 210,
			Website: "https://lecentral.example",
		},
		Price:      "$$$",
		Types:      "French restaurant, Bistro",
		Validation: ValidationOutcome{Matched: true, Score: 100, MatchedField: FieldName},
		Timestamp:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	noResult := Result{
		AccountID: "001XX0000002",
		Status:    StatusNoResult,
		Message:   "No search results found",
		Timestamp: time.Date(2026, 8, 1, 12, 1, 0, 0, time.UTC),
	}

	require.NoError(t, log.Append(enriched))
	require.NoError(t, log.Append(noResult))
	require.NoError(t, log.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, auditHeaders, rows[0])

	assert.Equal(t, "001XX0000001", rows[1][0])
	assert.Equal(t, "ENRICHED", rows[1][2])
	assert.Equal(t, "ChIJabc", rows[1][4])
	assert.Equal(t, "Le Central", rows[1][5])
	assert.Equal(t, "French restaurant, Bistro", rows[1][7])
	assert.Equal(t, "4.5", rows[1][8])
	assert.Equal(t, "210", rows[1][9])
	assert.Equal(t, "$$$", rows[1][10])
	assert.Equal(t, "100", rows[1][12])
	assert.Equal(t, FieldName, rows[1][13])

	assert.Equal(t, "001XX0000002", rows[2][0])
	assert.Equal(t, "NO_RESULT", rows[2][2])
	assert.Equal(t, "", rows[2][4])
}
