package sfrest

import "context"

// AccountClient defines the interface for Salesforce Account operations
type AccountClient interface {
	// GetUnenrichedAccounts fetches a page of accounts needing enrichment,
	// seek-paginated by Id
	GetUnenrichedAccounts(ctx context.Context, limit int, afterID string) ([]Account, error)

	// CountUnenrichedAccounts returns the number of accounts still needing
	// enrichment
	CountUnenrichedAccounts(ctx context.Context) (int, error)

	// UpdateAccount patches the given fields onto an Account record
	UpdateAccount(ctx context.Context, accountID string, fields map[string]interface{}) error
}
