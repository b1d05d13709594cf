package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/zenchef/salesforce-data-utils/pkg/enrich"
	"go.uber.org/zap"
)

// ResultStore persists enrichment outcomes in Postgres. It implements
// enrich.ResultStore and enrich.PendingStore.
type ResultStore struct {
	db     *DB
	logger *zap.Logger
}

// NewResultStore creates a new result store
func NewResultStore(db *DB, logger *zap.Logger) *ResultStore {
	return &ResultStore{
		db:     db,
		logger: logger,
	}
}

// Exists reports whether a result row is already stored for the account
func (s *ResultStore) Exists(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := s.db.Pool().QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM enrichment_results WHERE account_id = $1)",
		accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check result existence: %w", err)
	}
	return exists, nil
}

// SaveResult upserts the current-state row keyed by account id and appends
// a history row. The upsert keeps re-runs idempotent: the unique constraint
// collapses conflicting writes into an update.
func (s *ResultStore) SaveResult(ctx context.Context, r *enrich.Result) error {
	var (
		title, address, placeID, dataID, url pgtype.Text
		rating                               pgtype.Float8
		reviews                              pgtype.Int4
		prospection                          pgtype.Text
		bookings, delivery, takeout          bool
	)
	if r.Place != nil {
		title = pgtype.Text{String: r.Place.Title, Valid: r.Place.Title != ""}
		address = pgtype.Text{String: r.Place.Address, Valid: r.Place.Address != ""}
		placeID = pgtype.Text{String: r.Place.PlaceID, Valid: r.Place.PlaceID != ""}
		dataID = pgtype.Text{String: r.Place.DataID, Valid: r.Place.DataID != ""}
		url = pgtype.Text{String: r.Place.Website, Valid: r.Place.Website != ""}
		rating = pgtype.Float8{Float64: r.Place.Rating, Valid: true}
		reviews = pgtype.Int4{Int32: int32(r.Place.Reviews), Valid: true}
		ps := r.Place.Status.ProspectionStatus()
		prospection = pgtype.Text{String: ps, Valid: ps != ""}
		bookings = r.Place.AcceptsBookings
		delivery = r.Place.HasDelivery
		takeout = r.Place.HasTakeout
	}
	types := pgtype.Text{String: r.Types, Valid: r.Types != ""}
	price := pgtype.Text{String: r.Price, Valid: r.Price != ""}
	syncStatus := r.SyncStatus
	if syncStatus == "" {
		syncStatus = enrich.SyncPending
	}

	_, err := s.db.Pool().Exec(ctx, `
		INSERT INTO enrichment_results (
			account_id, status, message, title, address,
			google_place_id, google_data_id, google_type, google_rating,
			google_reviews, google_price, google_url, prospection_status,
			has_accept_bookings, has_delivery, has_takeout,
			match_score, matched_field, sync_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20
		)
		ON CONFLICT (account_id) DO UPDATE SET
			status = EXCLUDED.status,
			message = EXCLUDED.message,
			title = EXCLUDED.title,
			address = EXCLUDED.address,
			google_place_id = EXCLUDED.google_place_id,
			google_data_id = EXCLUDED.google_data_id,
			google_type = EXCLUDED.google_type,
			google_rating = EXCLUDED.google_rating,
			google_reviews = EXCLUDED.google_reviews,
			google_price = EXCLUDED.google_price,
			google_url = EXCLUDED.google_url,
			prospection_status = EXCLUDED.prospection_status,
			has_accept_bookings = EXCLUDED.has_accept_bookings,
			has_delivery = EXCLUDED.has_delivery,
			has_takeout = EXCLUDED.has_takeout,
			match_score = EXCLUDED.match_score,
			matched_field = EXCLUDED.matched_field,
			sync_status = EXCLUDED.sync_status,
			updated_at = EXCLUDED.updated_at`,
		r.AccountID, string(r.Status), r.Message, title, address,
		placeID, dataID, types, rating,
		reviews, price, url, prospection,
		bookings, delivery, takeout,
		r.Validation.Score, r.Validation.MatchedField, syncStatus, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert result for %s: %w", r.AccountID, err)
	}

	// History insert failures are logged but don't fail the save; the
	// current-state row is the source of truth
	_, err = s.db.Pool().Exec(ctx, `
		INSERT INTO enrichment_history (
			id, account_id, status, message, title, address,
			google_place_id, google_type, google_rating, google_reviews,
			google_price, google_url, match_score, matched_field, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		uuid.New().String(), r.AccountID, string(r.Status), r.Message, title, address,
		placeID, types, rating, reviews,
		price, url, r.Validation.Score, r.Validation.MatchedField, r.Timestamp,
	)
	if err != nil {
		s.logger.Error("Failed to insert history row",
			zap.String("account_id", r.AccountID),
			zap.Error(err))
	}

	return nil
}

// GetUnsynced fetches result rows with sync status PENDING
func (s *ResultStore) GetUnsynced(ctx context.Context, limit int) ([]enrich.StoredResult, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT account_id, status,
			COALESCE(google_place_id, ''), COALESCE(google_data_id, ''),
			COALESCE(google_type, ''), COALESCE(google_rating, 0),
			COALESCE(google_reviews, 0), COALESCE(google_price, ''),
			COALESCE(prospection_status, ''), has_accept_bookings,
			has_delivery, has_takeout, COALESCE(google_url, ''), sync_status
		FROM enrichment_results
		WHERE sync_status = $1 AND status = $2
		ORDER BY account_id
		LIMIT $3`,
		enrich.SyncPending, string(enrich.StatusEnriched), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsynced results: %w", err)
	}
	defer rows.Close()

	var results []enrich.StoredResult
	for rows.Next() {
		var r enrich.StoredResult
		if err := rows.Scan(
			&r.AccountID, &r.Status, &r.PlaceID, &r.DataID,
			&r.Types, &r.Rating, &r.Reviews, &r.Price,
			&r.ProspectionStatus, &r.AcceptsBookings,
			&r.HasDelivery, &r.HasTakeout, &r.URL, &r.SyncStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan unsynced result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// UpdateSyncStatus sets the sync state for one account's row
func (s *ResultStore) UpdateSyncStatus(ctx context.Context, accountID, status string) error {
	_, err := s.db.Pool().Exec(ctx,
		"UPDATE enrichment_results SET sync_status = $1, updated_at = now() WHERE account_id = $2",
		status, accountID)
	if err != nil {
		return fmt.Errorf("failed to update sync status for %s: %w", accountID, err)
	}
	return nil
}

// StatusCounts returns how many stored results exist per status
func (s *ResultStore) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.Pool().Query(ctx,
		"SELECT status, COUNT(*) FROM enrichment_results GROUP BY status ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// AccountPrice is the slim row shape used by the price-format migration
type AccountPrice struct {
	AccountID string
	Price     string
}

// ListPrices pages through stored price values, ordered by account id
func (s *ResultStore) ListPrices(ctx context.Context, limit, offset int) ([]AccountPrice, error) {
	rows, err := s.db.Pool().Query(ctx, `
		SELECT account_id, COALESCE(google_price, '')
		FROM enrichment_results
		ORDER BY account_id
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var prices []AccountPrice
	for rows.Next() {
		var p AccountPrice
		if err := rows.Scan(&p.AccountID, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		prices = append(prices, p)
	}

	return prices, rows.Err()
}

// UpdatePrice overwrites the stored price for one account
func (s *ResultStore) UpdatePrice(ctx context.Context, accountID, price string) error {
	_, err := s.db.Pool().Exec(ctx,
		"UPDATE enrichment_results SET google_price = $1, updated_at = now() WHERE account_id = $2",
		price, accountID)
	if err != nil {
		return fmt.Errorf("failed to update price for %s: %w", accountID, err)
	}
	return nil
}
