package sfrest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUnenrichedQuery_FirstPage(t *testing.T) {
	q := buildUnenrichedQuery(1000, "")

	assert.Contains(t, q, "FROM Account")
	assert.Contains(t, q, "Google_Place_ID__c = null")
	assert.Contains(t, q, "Hotel_Restaurant__c = false")
	assert.Contains(t, q, "RecordType.Name != 'Parent'")
	assert.Contains(t, q, "ORDER BY Id ASC LIMIT 1000")
	assert.NotContains(t, q, "Id >")
}

func TestBuildUnenrichedQuery_SeekCursor(t *testing.T) {
	q := buildUnenrichedQuery(500, "001XX0000001")

	assert.Contains(t, q, "AND Id > '001XX0000001'")
	assert.Contains(t, q, "ORDER BY Id ASC LIMIT 500")
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		LoginBaseURI: "https://login.salesforce.com",
		ClientID:     "id",
		ClientSecret: "secret",
		APIVersion:   "v59.0",
	}
	assert.NoError(t, cfg.Validate())

	cfg.ClientSecret = ""
	assert.EqualError(t, cfg.Validate(), "SF_CLIENT_SECRET is required")

	cfg = &Config{}
	assert.EqualError(t, cfg.Validate(), "SF_LOGIN_BASE_URI is required")
}
