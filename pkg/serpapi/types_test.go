package serpapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseResponse(t *testing.T, raw string) *searchResponse {
	t.Helper()
	var resp searchResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestParseLocalResult(t *testing.T) {
	resp := parseResponse(t, `{
		"local_results": [{
			"title": "Le Central",
			"address": "12 Rue X, Paris",
			"place_id": "ChIJabc",
			"data_id": "0x0:0x1",
			"rating": 4.35,
			"reviews": 812,
			"price": "€20–30",
			"type": ["French restaurant", "Bistro"],
			"website": "https://lecentral.example",
			"service_options": {"dine_in": true, "delivery": true, "takeout": false}
		}]
	}`)

	require.Len(t, resp.LocalResults, 1)
	p := resp.LocalResults[0].toPlace()

	assert.Equal(t, "Le Central", p.Title)
	assert.Equal(t, "ChIJabc", p.PlaceID)
	assert.Equal(t, 4.35, p.Rating)
	assert.Equal(t, 812, p.Reviews)
	assert.Equal(t, []string{"French restaurant", "Bistro"}, p.Types)
	assert.True(t, p.HasDelivery)
	assert.False(t, p.HasTakeout)
	assert.False(t, p.AcceptsBookings)
	assert.Equal(t, StatusOpen, p.Status)
	assert.Empty(t, p.Status.ProspectionStatus())
}

func TestParseTypeAsSingleString(t *testing.T) {
	resp := parseResponse(t, `{"local_results": [{"title": "X", "type": "Cafe"}]}`)
	p := resp.LocalResults[0].toPlace()
	assert.Equal(t, []string{"Cafe"}, p.Types)
}

func TestParseServiceOptionsAsList(t *testing.T) {
	resp := parseResponse(t, `{
		"local_results": [{
			"title": "X",
			"service_options": ["Dine-in", "Takeout", "Delivery"]
		}]
	}`)
	p := resp.LocalResults[0].toPlace()
	assert.True(t, p.HasDelivery)
	assert.True(t, p.HasTakeout)
}

func TestParseBookingSignals(t *testing.T) {
	resp := parseResponse(t, `{
		"local_results": [{
			"title": "X",
			"reserve_a_table": {"link": "https://book.example"}
		}]
	}`)
	assert.True(t, resp.LocalResults[0].toPlace().AcceptsBookings)

	resp = parseResponse(t, `{
		"local_results": [{
			"title": "X",
			"extensions": ["Online booking available"]
		}]
	}`)
	assert.True(t, resp.LocalResults[0].toPlace().AcceptsBookings)
}

func TestParseOperatingStatus(t *testing.T) {
	resp := parseResponse(t, `{
		"local_results": [{"title": "X", "operating_status": "PERMANENTLY_CLOSED"}]
	}`)
	p := resp.LocalResults[0].toPlace()
	assert.Equal(t, StatusPermanentlyClosed, p.Status)
	assert.Equal(t, "Permanently Closed", p.Status.ProspectionStatus())

	resp = parseResponse(t, `{
		"local_results": [{"title": "X", "operating_status": "TEMPORARILY_CLOSED"}]
	}`)
	assert.Equal(t, "Temporarily Closed", resp.LocalResults[0].toPlace().Status.ProspectionStatus())
}

func TestParsePlaceResultsFallback(t *testing.T) {
	resp := parseResponse(t, `{
		"place_results": {"title": "Chez Direct", "place_id": "ChIJdef"}
	}`)
	assert.Empty(t, resp.LocalResults)
	require.NotNil(t, resp.PlaceResults)
	assert.Equal(t, "Chez Direct", resp.PlaceResults.toPlace().Title)
}

func TestParseAPIError(t *testing.T) {
	resp := parseResponse(t, `{"error": "Invalid API key"}`)
	assert.Equal(t, "Invalid API key", resp.Error)
}
