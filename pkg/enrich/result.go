package enrich

import (
	"time"

	"github.com/zenchef/salesforce-data-utils/pkg/serpapi"
)

// Status is the terminal outcome of processing one account
type Status string

const (
	StatusEnriched           Status = "ENRICHED"
	StatusSkipped            Status = "SKIPPED"
	StatusNoResult           Status = "NO_RESULT"
	StatusSkippedSanityCheck Status = "SKIPPED_SANITY_CHECK"
	StatusError              Status = "ERROR"
)

// Sync states for rows waiting to be pushed back to Salesforce
const (
	SyncPending = "PENDING"
	SyncSynced  = "SYNCED"
	SyncError   = "ERROR"
)

// Result is the per-account outcome emitted exactly once per run
type Result struct {
	AccountID   string
	AccountName string
	Status      Status
	Message     string
	// Place holds the parsed candidate when the search returned one;
	// nil for SKIPPED/NO_RESULT/ERROR before a result was fetched
	Place      *serpapi.Place
	Price      string // normalized price tier
	Types      string // flattened category list
	Validation ValidationOutcome
	SyncStatus string
	Timestamp  time.Time
}

// StoredResult is the persisted row shape read back for syncing and
// maintenance commands
type StoredResult struct {
	AccountID         string
	Status            Status
	PlaceID           string
	DataID            string
	Types             string
	Rating            float64
	Reviews           int
	Price             string
	ProspectionStatus string
	AcceptsBookings   bool
	HasDelivery       bool
	HasTakeout        bool
	URL               string
	SyncStatus        string
}
