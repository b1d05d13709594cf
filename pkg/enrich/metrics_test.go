package enrich

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStatsConcurrentAdds(t *testing.T) {
	stats := NewRunStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				stats.Add(StatusEnriched)
			} else {
				stats.Add(StatusNoResult)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, stats.Count(StatusEnriched))
	assert.Equal(t, 25, stats.Count(StatusNoResult))
	assert.Equal(t, 50, stats.Total())

	snap := stats.Snapshot()
	assert.Equal(t, 25, snap[StatusEnriched])
	assert.Zero(t, stats.Count(StatusError))
}
