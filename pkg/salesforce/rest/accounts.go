package sfrest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	httpclient "github.com/zenchef/salesforce-data-utils/pkg/http"
	"go.uber.org/zap"
)

const accountFields = "Id, Name, Nom_du_restaurant__c, BillingStreet, BillingCity, BillingCountry, " +
	"Website, Phone, Type, RecordType.Name"

// unenrichedFilter selects accounts that have no Google place yet, skipping
// hotel-restaurants and 'Parent' record types which are handled elsewhere.
const unenrichedFilter = "Google_Place_ID__c = null AND Hotel_Restaurant__c = false AND RecordType.Name != 'Parent'"

// buildUnenrichedQuery builds the SOQL for a page of unenriched accounts.
// Pages are seek-paginated: ordering by Id and filtering Id > afterID keeps
// the cursor stable while other workers mutate the underlying set.
func buildUnenrichedQuery(limit int, afterID string) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(accountFields)
	sb.WriteString(" FROM Account WHERE ")
	sb.WriteString(unenrichedFilter)
	if afterID != "" {
		fmt.Fprintf(&sb, " AND Id > '%s'", afterID)
	}
	fmt.Fprintf(&sb, " ORDER BY Id ASC LIMIT %d", limit)
	return sb.String()
}

// GetUnenrichedAccounts fetches a page of accounts needing enrichment,
// starting after afterID (empty for the first page).
func (s *Salesforce) GetUnenrichedAccounts(ctx context.Context, limit int, afterID string) ([]Account, error) {
	resp, err := s.Query(ctx, buildUnenrichedQuery(limit, afterID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unenriched accounts: %w", err)
	}
	return resp.Records, nil
}

// CountUnenrichedAccounts returns the total number of accounts still needing
// enrichment.
func (s *Salesforce) CountUnenrichedAccounts(ctx context.Context) (int, error) {
	resp, err := s.Query(ctx, "SELECT COUNT() FROM Account WHERE "+unenrichedFilter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unenriched accounts: %w", err)
	}
	return resp.TotalSize, nil
}

// Query executes a SOQL query and returns the first page of results
func (s *Salesforce) Query(ctx context.Context, soql string) (*QueryResponse, error) {
	token, instance, err := s.getSession(ctx)
	if err != nil {
		return nil, err
	}

	queryURL, err := httpclient.BuildURL(instance,
		fmt.Sprintf("/services/data/%s/query", s.config.APIVersion),
		map[string]string{"q": soql})
	if err != nil {
		return nil, fmt.Errorf("failed to build query URL: %w", err)
	}

	resp, err := s.httpClient.Get(ctx, queryURL, map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		s.logger.Error("SOQL query failed", zap.Error(err), zap.String("soql", soql))
		return nil, fmt.Errorf("query request failed: %w", err)
	}

	var queryResp QueryResponse
	if err := json.Unmarshal(resp.Body, &queryResp); err != nil {
		s.logger.Error("Failed to parse query response", zap.Error(err))
		return nil, fmt.Errorf("failed to parse query response: %w", err)
	}

	s.logger.Debug("SOQL query completed",
		zap.Int("total_size", queryResp.TotalSize),
		zap.Int("records", len(queryResp.Records)))

	return &queryResp, nil
}

// UpdateAccount patches the given fields onto an Account record
func (s *Salesforce) UpdateAccount(ctx context.Context, accountID string, fields map[string]interface{}) error {
	token, instance, err := s.getSession(ctx)
	if err != nil {
		return err
	}

	updateURL := fmt.Sprintf("%s/services/data/%s/sobjects/Account/%s",
		instance, s.config.APIVersion, accountID)

	_, err = s.httpClient.Patch(ctx, updateURL, map[string]string{
		"Authorization": "Bearer " + token,
	}, fields)
	if err != nil {
		s.logger.Error("Failed to update account",
			zap.String("account_id", accountID),
			zap.Error(err))
		return fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.logger.Debug("Updated account", zap.String("account_id", accountID))
	return nil
}
