package enrich

import "sync"

// RunStats accumulates per-status counts across workers
type RunStats struct {
	mu     sync.Mutex
	counts map[Status]int
}

// NewRunStats creates an empty stats accumulator
func NewRunStats() *RunStats {
	return &RunStats{counts: make(map[Status]int)}
}

// Add increments the count for a status
func (s *RunStats) Add(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[status]++
}

// Count returns the count for a single status
func (s *RunStats) Count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[status]
}

// Total returns the number of accounts processed
func (s *RunStats) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// Snapshot returns a copy of the per-status counts
func (s *RunStats) Snapshot() map[Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Status]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}
