package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sfrest "github.com/zenchef/salesforce-data-utils/pkg/salesforce/rest"
	"go.uber.org/zap"
)

type fetchCall struct {
	limit   int
	afterID string
}

type fakeSource struct {
	mu       sync.Mutex
	accounts []sfrest.Account
	calls    []fetchCall
	err      error
}

func (f *fakeSource) GetUnenrichedAccounts(_ context.Context, limit int, afterID string) ([]sfrest.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{limit: limit, afterID: afterID})
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if afterID != "" {
		for i, acc := range f.accounts {
			if acc.ID > afterID {
				start = i
				break
			}
			start = i + 1
		}
	}
	end := start + limit
	if end > len(f.accounts) {
		end = len(f.accounts)
	}
	if start >= len(f.accounts) {
		return nil, nil
	}
	return f.accounts[start:end], nil
}

func makeAccounts(n int) []sfrest.Account {
	accounts := make([]sfrest.Account, n)
	for i := range accounts {
		accounts[i] = sfrest.Account{
			ID:   fmt.Sprintf("001XX%07d", i+1),
			Name: fmt.Sprintf("Restaurant %d", i+1),
		}
	}
	return accounts
}

func newTestFetcher(source *fakeSource, store *fakeStore) (*Fetcher, *Service) {
	// Search returns no results so the flow stays local to the fakes
	svc := NewService(&fakeUpdater{}, &fakeSearcher{}, store, nil, zap.NewNop())
	return NewFetcher(source, svc, zap.NewNop()), svc
}

func TestFetcherPagesUntilShortPage(t *testing.T) {
	source := &fakeSource{accounts: makeAccounts(25)}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, svc := newTestFetcher(source, store)

	processed, err := fetcher.Run(context.Background(), BatchOptions{BatchSize: 10, MaxWorkers: 4})

	require.NoError(t, err)
	assert.Equal(t, 25, processed)
	// Pages of 10, 10, 5; the short page stops the loop
	require.Len(t, source.calls, 3)
	assert.Equal(t, "", source.calls[0].afterID)
	assert.Equal(t, "001XX0000010", source.calls[1].afterID)
	assert.Equal(t, "001XX0000020", source.calls[2].afterID)

	// Every account got exactly one recorded outcome
	assert.Len(t, store.saved, 25)
	assert.Equal(t, 25, svc.Stats().Total())
}

func TestFetcherStopsAtLimit(t *testing.T) {
	source := &fakeSource{accounts: makeAccounts(50)}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, _ := newTestFetcher(source, store)

	processed, err := fetcher.Run(context.Background(), BatchOptions{BatchSize: 10, MaxWorkers: 2, Limit: 7})

	require.NoError(t, err)
	assert.Equal(t, 7, processed)
	require.Len(t, source.calls, 1)
	assert.Equal(t, 7, source.calls[0].limit)
	assert.Len(t, store.saved, 7)
}

func TestFetcherLimitAcrossPages(t *testing.T) {
	source := &fakeSource{accounts: makeAccounts(50)}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, _ := newTestFetcher(source, store)

	processed, err := fetcher.Run(context.Background(), BatchOptions{BatchSize: 10, MaxWorkers: 2, Limit: 15})

	require.NoError(t, err)
	assert.Equal(t, 15, processed)
	require.Len(t, source.calls, 2)
	assert.Equal(t, 10, source.calls[0].limit)
	assert.Equal(t, 5, source.calls[1].limit)
}

func TestFetcherEmptySet(t *testing.T) {
	source := &fakeSource{}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, _ := newTestFetcher(source, store)

	processed, err := fetcher.Run(context.Background(), BatchOptions{})

	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestFetcherFetchErrorPropagates(t *testing.T) {
	source := &fakeSource{err: errors.New("query timeout")}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, _ := newTestFetcher(source, store)

	_, err := fetcher.Run(context.Background(), BatchOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query timeout")
}

func TestFetcherHonorsCancellation(t *testing.T) {
	source := &fakeSource{accounts: makeAccounts(30)}
	store := &fakeStore{existing: map[string]bool{}}
	fetcher, _ := newTestFetcher(source, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processed, err := fetcher.Run(ctx, BatchOptions{BatchSize: 10})
	require.NoError(t, err)
	assert.Zero(t, processed, "cancelled run must not start new pages")
}

func TestFetcherOneBadRecordDoesNotAbortBatch(t *testing.T) {
	source := &fakeSource{accounts: makeAccounts(5)}
	store := &fakeStore{existing: map[string]bool{}}
	// Search errors for every record: all five end in ERROR, none abort
	svc := NewService(&fakeUpdater{}, &fakeSearcher{err: errors.New("boom")}, store, nil, zap.NewNop())
	fetcher := NewFetcher(source, svc, zap.NewNop())

	processed, err := fetcher.Run(context.Background(), BatchOptions{BatchSize: 10, MaxWorkers: 3})

	require.NoError(t, err)
	assert.Equal(t, 5, processed)
	assert.Equal(t, 5, svc.Stats().Count(StatusError))
}
