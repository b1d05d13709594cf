package enrich

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

var auditHeaders = []string{
	"account_id", "account_name", "status", "message",
	"google_place_id", "google_title", "google_address",
	"google_type", "google_rating", "google_reviews",
	"google_price", "google_url", "match_score", "matched_field",
	"timestamp",
}

// AuditLog appends every per-account outcome to a CSV file. Appends are
// serialized so pool workers can share one log.
type AuditLog struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewAuditLog creates the CSV file and writes the header row
func NewAuditLog(path string) (*AuditLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(auditHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write audit header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to flush audit header: %w", err)
	}

	return &AuditLog{file: f, writer: w}, nil
}

// Append writes one outcome row
func (a *AuditLog) Append(r Result) error {
	row := []string{
		r.AccountID, r.AccountName, string(r.Status), r.Message,
		"", "", "", "", "", "",
		r.Price, "",
		strconv.Itoa(r.Validation.Score), r.Validation.MatchedField,
		r.Timestamp.Format(time.RFC3339),
	}
	if r.Place != nil {
		row[4] = r.Place.PlaceID
		row[5] = r.Place.Title
		row[6] = r.Place.Address
		row[7] = r.Types
		row[8] = strconv.FormatFloat(r.Place.Rating, 'f', -1, 64)
		row[9] = strconv.Itoa(r.Place.Reviews)
		row[11] = r.Place.Website
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write audit row: %w", err)
	}
	a.writer.Flush()
	return a.writer.Error()
}

// Close flushes and closes the underlying file
func (a *AuditLog) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writer.Flush()
	if err := a.writer.Error(); err != nil {
		a.file.Close()
		return err
	}
	return a.file.Close()
}
