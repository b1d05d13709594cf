package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	sfrest "github.com/zenchef/salesforce-data-utils/pkg/salesforce/rest"
	"github.com/zenchef/salesforce-data-utils/pkg/serpapi"
	"go.uber.org/zap"
)

// searchKeyword is appended to every query to bias results toward the
// business category we enrich
const searchKeyword = "Restaurant"

// ResultStore persists per-account outcomes, keyed by account id
type ResultStore interface {
	// Exists reports whether a result row is already stored for the account
	Exists(ctx context.Context, accountID string) (bool, error)

	// SaveResult upserts the current-state row and appends a history row
	SaveResult(ctx context.Context, r *Result) error
}

// AccountUpdater pushes enriched fields back onto the Salesforce account
type AccountUpdater interface {
	UpdateAccount(ctx context.Context, accountID string, fields map[string]interface{}) error
}

// Service orchestrates the enrichment flow for single accounts
type Service struct {
	sf     AccountUpdater
	search serpapi.Searcher
	store  ResultStore
	audit  *AuditLog
	stats  *RunStats
	logger *zap.Logger
}

// NewService creates a new enrichment service. audit may be nil to disable
// the CSV log.
func NewService(sf AccountUpdater, search serpapi.Searcher, store ResultStore, audit *AuditLog, logger *zap.Logger) *Service {
	return &Service{
		sf:     sf,
		search: search,
		store:  store,
		audit:  audit,
		stats:  NewRunStats(),
		logger: logger,
	}
}

// Stats returns the run's per-status counters
func (s *Service) Stats() *RunStats {
	return s.stats
}

// EnrichAccount runs the full flow for one account: skip if already done,
// build the search query, search, sanity-check the match, normalize fields,
// update Salesforce (unless dryRun) and record the outcome. Every failure
// mode terminates in a recorded result; the method never propagates
// per-account errors.
func (s *Service) EnrichAccount(ctx context.Context, acc sfrest.Account, dryRun bool) Result {
	// Check pre-existence first to save API credits and keep re-runs
	// idempotent
	exists, err := s.store.Exists(ctx, acc.ID)
	if err != nil {
		s.logger.Warn("Failed to check existing result, processing anyway",
			zap.String("account_id", acc.ID),
			zap.Error(err))
	}
	if exists {
		s.logger.Info("Account already enriched, skipping search",
			zap.String("account_id", acc.ID))
		s.stats.Add(StatusSkipped)
		return Result{
			AccountID:   acc.ID,
			AccountName: acc.Name,
			Status:      StatusSkipped,
			Message:     "Already enriched",
			Timestamp:   time.Now(),
		}
	}

	query := buildSearchQuery(acc)
	if query == "" {
		return s.finish(ctx, acc, StatusSkipped, "Insufficient data", nil, ValidationOutcome{}, "")
	}

	s.logger.Info("Searching", zap.String("account_id", acc.ID), zap.String("query", query))
	place, err := s.search.SearchGoogleMaps(ctx, query)
	if err != nil {
		return s.finish(ctx, acc, StatusError, fmt.Sprintf("Search failed: %v", err), nil, ValidationOutcome{}, "")
	}
	if place == nil {
		s.logger.Info("No results found", zap.String("account_id", acc.ID))
		return s.finish(ctx, acc, StatusNoResult, "No search results found", nil, ValidationOutcome{}, "")
	}

	outcome := ValidateMatch(place.Title, acc.Name, acc.RestaurantName)
	if !outcome.Matched {
		s.logger.Warn("Sanity check failed",
			zap.String("account_id", acc.ID),
			zap.String("title", place.Title),
			zap.Int("score", outcome.Score))
		msg := fmt.Sprintf("Best match: %d%% < %d%%", outcome.Score, MatchThreshold)
		return s.finish(ctx, acc, StatusSkippedSanityCheck, msg, place, outcome, "")
	}

	s.logger.Info("Sanity check passed",
		zap.String("account_id", acc.ID),
		zap.String("matched_field", outcome.MatchedField),
		zap.Int("score", outcome.Score))

	if dryRun {
		return s.finish(ctx, acc, StatusEnriched, "Enrichment successful (DRY RUN)", place, outcome, SyncPending)
	}

	payload := updatePayload(place)
	if err := s.sf.UpdateAccount(ctx, acc.ID, payload); err != nil {
		return s.finish(ctx, acc, StatusError, fmt.Sprintf("Salesforce update failed: %v", err), place, outcome, SyncError)
	}

	return s.finish(ctx, acc, StatusEnriched, "Enrichment successful", place, outcome, SyncSynced)
}

// finish builds the result, persists it and updates the run counters.
// Persistence failures are logged, not propagated, so one bad row never
// halts the batch.
func (s *Service) finish(ctx context.Context, acc sfrest.Account, status Status, message string, place *serpapi.Place, outcome ValidationOutcome, syncStatus string) Result {
	r := Result{
		AccountID:   acc.ID,
		AccountName: acc.Name,
		Status:      status,
		Message:     message,
		Place:       place,
		Validation:  outcome,
		SyncStatus:  syncStatus,
		Timestamp:   time.Now(),
	}
	if place != nil {
		r.Price = CleanPrice(place.Price)
		r.Types = FormatTypes(place.Types)
	}

	if err := s.store.SaveResult(ctx, &r); err != nil {
		s.logger.Error("Failed to store result",
			zap.String("account_id", acc.ID),
			zap.String("status", string(status)),
			zap.Error(err))
	}
	if s.audit != nil {
		if err := s.audit.Append(r); err != nil {
			s.logger.Error("Failed to write audit row",
				zap.String("account_id", acc.ID),
				zap.Error(err))
		}
	}

	s.stats.Add(status)
	s.logger.Info("Processed account",
		zap.String("account_id", acc.ID),
		zap.String("status", string(status)),
		zap.String("message", message))
	return r
}

// buildSearchQuery concatenates the account's identity fields plus the
// domain keyword. Empty when the account has no usable fields.
func buildSearchQuery(acc sfrest.Account) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{acc.Name, acc.BillingStreet, acc.BillingCity, acc.BillingCountry} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(append(parts, searchKeyword), " ")
}

// updatePayload maps a validated place to the Account fields we maintain
func updatePayload(place *serpapi.Place) map[string]interface{} {
	return map[string]interface{}{
		"Google_Place_ID__c":                      place.PlaceID,
		"Google_Data_ID__c":                       place.DataID,
		"Google_Type__c":                          FormatTypes(place.Types),
		"Google_Rating__c":                        place.Rating,
		"Google_Reviews__c":                       place.Reviews,
		"Google_Price__c":                         CleanPrice(place.Price),
		"Google_Updated_Date__c":                  time.Now().Format("2006-01-02"),
		"Prospection_Status__c":                   place.Status.ProspectionStatus(),
		"Has_Google_Accept_Bookings_Extension__c": place.AcceptsBookings,
		"HasGoogleDeliveryExtension__c":           place.HasDelivery,
		"HasGoogleTakeoutExtension__c":            place.HasTakeout,
		"Google_Thumbnail_URL__c":                 place.Thumbnail,
		"Google_URL__c":                           place.Website,
	}
}
