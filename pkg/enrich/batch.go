package enrich

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	sfrest "github.com/zenchef/salesforce-data-utils/pkg/salesforce/rest"
	"go.uber.org/zap"
)

const (
	// DefaultBatchSize is the page size for the seek-paginated account fetch
	DefaultBatchSize = 1000
	// DefaultMaxWorkers bounds the number of accounts processed concurrently
	DefaultMaxWorkers = 20
)

// AccountSource pages through accounts needing enrichment
type AccountSource interface {
	GetUnenrichedAccounts(ctx context.Context, limit int, afterID string) ([]sfrest.Account, error)
}

// BatchOptions controls one enrichment run
type BatchOptions struct {
	DryRun bool
	// Limit caps the number of accounts processed; 0 means no cap
	Limit      int
	BatchSize  int
	MaxWorkers int
}

// Fetcher pages through the unenriched account set and dispatches each page
// to a bounded worker pool running the enrichment flow
type Fetcher struct {
	accounts AccountSource
	svc      *Service
	logger   *zap.Logger
}

// NewFetcher creates a new batch fetcher
func NewFetcher(accounts AccountSource, svc *Service, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		accounts: accounts,
		svc:      svc,
		logger:   logger,
	}
}

// Run fetches pages of accounts with seek pagination (Id > last seen,
// ordered by Id) until a short page, the limit, or cancellation stops it.
// Each page fans out across the worker pool; a single account's failure is
// recorded as a result and never aborts the batch. The cursor holds no
// durable state: after a crash, a re-run re-derives its position from the
// already-stored results, which the per-account flow skips over.
func (f *Fetcher) Run(ctx context.Context, opts BatchOptions) (int, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}

	totalProcessed := 0
	lastID := ""

	for {
		if err := ctx.Err(); err != nil {
			f.logger.Info("Run cancelled, stopping after current page",
				zap.Int("processed", totalProcessed))
			return totalProcessed, nil
		}

		fetchLimit := batchSize
		if opts.Limit > 0 {
			remaining := opts.Limit - totalProcessed
			if remaining <= 0 {
				break
			}
			if remaining < fetchLimit {
				fetchLimit = remaining
			}
		}

		accounts, err := f.accounts.GetUnenrichedAccounts(ctx, fetchLimit, lastID)
		if err != nil {
			return totalProcessed, fmt.Errorf("failed to fetch accounts page: %w", err)
		}
		if len(accounts) == 0 {
			f.logger.Info("No more accounts to enrich")
			break
		}

		f.logger.Info("Fetched accounts page",
			zap.Int("count", len(accounts)),
			zap.String("last_id", accounts[len(accounts)-1].ID))

		p := pool.New().WithMaxGoroutines(workers)
		for _, acc := range accounts {
			acc := acc // capture loop variable
			p.Go(func() {
				f.svc.EnrichAccount(ctx, acc, opts.DryRun)
			})
		}
		p.Wait()

		totalProcessed += len(accounts)
		lastID = accounts[len(accounts)-1].ID

		if len(accounts) < fetchLimit {
			break
		}
	}

	return totalProcessed, nil
}
