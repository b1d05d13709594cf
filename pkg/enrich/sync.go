package enrich

import (
	"context"

	"go.uber.org/zap"
)

// PendingStore reads and flags stored results waiting to be pushed to
// Salesforce
type PendingStore interface {
	GetUnsynced(ctx context.Context, limit int) ([]StoredResult, error)
	UpdateSyncStatus(ctx context.Context, accountID, status string) error
}

// SyncService pushes enriched fields from the result store back onto the
// Salesforce accounts
type SyncService struct {
	sf     AccountUpdater
	store  PendingStore
	logger *zap.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(sf AccountUpdater, store PendingStore, logger *zap.Logger) *SyncService {
	return &SyncService{
		sf:     sf,
		store:  store,
		logger: logger,
	}
}

// SyncPending updates Salesforce from stored rows with sync status PENDING.
// dryRun logs what would be written and flags the row SYNCED without
// touching Salesforce. Returns the number of rows synced and failed.
func (s *SyncService) SyncPending(ctx context.Context, limit int, dryRun bool) (int, int, error) {
	s.logger.Info("Starting sync", zap.Int("limit", limit), zap.Bool("dry_run", dryRun))

	pending, err := s.store.GetUnsynced(ctx, limit)
	if err != nil {
		return 0, 0, err
	}
	if len(pending) == 0 {
		s.logger.Info("No pending records to sync")
		return 0, 0, nil
	}

	s.logger.Info("Found pending records", zap.Int("count", len(pending)))

	synced := 0
	failed := 0
	for _, rec := range pending {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Sync cancelled", zap.Int("synced", synced), zap.Int("failed", failed))
			return synced, failed, nil
		}
		if rec.AccountID == "" {
			continue
		}

		payload := syncPayload(rec)

		if dryRun {
			s.logger.Info("Would update account",
				zap.String("account_id", rec.AccountID),
				zap.Any("payload", payload))
			s.markSynced(ctx, rec.AccountID, SyncSynced)
			synced++
			continue
		}

		if err := s.sf.UpdateAccount(ctx, rec.AccountID, payload); err != nil {
			s.logger.Error("Failed to sync account",
				zap.String("account_id", rec.AccountID),
				zap.Error(err))
			s.markSynced(ctx, rec.AccountID, SyncError)
			failed++
			continue
		}

		s.logger.Info("Synced account", zap.String("account_id", rec.AccountID))
		s.markSynced(ctx, rec.AccountID, SyncSynced)
		synced++
	}

	s.logger.Info("Sync complete", zap.Int("synced", synced), zap.Int("failed", failed))
	return synced, failed, nil
}

func (s *SyncService) markSynced(ctx context.Context, accountID, status string) {
	if err := s.store.UpdateSyncStatus(ctx, accountID, status); err != nil {
		s.logger.Error("Failed to update sync status",
			zap.String("account_id", accountID),
			zap.String("status", status),
			zap.Error(err))
	}
}

// syncPayload maps a stored row to the Account fields, re-cleaning the
// price so legacy rows with raw amounts still produce picklist values
func syncPayload(rec StoredResult) map[string]interface{} {
	return map[string]interface{}{
		"Google_Place_ID__c":                      rec.PlaceID,
		"Google_Data_ID__c":                       rec.DataID,
		"Google_Type__c":                          rec.Types,
		"Google_Rating__c":                        rec.Rating,
		"Google_Reviews__c":                       rec.Reviews,
		"Google_Price__c":                         CleanPrice(rec.Price),
		"Prospection_Status__c":                   rec.ProspectionStatus,
		"Has_Google_Accept_Bookings_Extension__c": rec.AcceptsBookings,
		"HasGoogleDeliveryExtension__c":           rec.HasDelivery,
		"HasGoogleTakeoutExtension__c":            rec.HasTakeout,
		"Google_URL__c":                           rec.URL,
	}
}
