package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDUniqueAndIncreasing(t *testing.T) {
	g := NewSnowflakeIDGenerator(3)

	prev := int64(0)
	for i := 0; i < 1500; i++ {
		id := g.NextID()
		require.Greater(t, id, prev)
		assert.Equal(t, int64(3), (id/1000)%100, "node id is embedded")
		prev = id
	}
}

func TestNextIDConcurrent(t *testing.T) {
	g := NewSnowflakeIDGenerator(1)

	const workers, perWorker = 8, 100
	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- g.NextID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestInvalidNodeIDFallsBackToZero(t *testing.T) {
	g := NewSnowflakeIDGenerator(500)
	assert.Equal(t, int64(0), (g.NextID()/1000)%100)
}
