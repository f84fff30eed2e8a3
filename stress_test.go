package wtinylfu

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhrubacb/wtinylfu/config"
)

// TestStressConcurrentGetPut hammers a small cache from many goroutines at
// once, in the shape of the teacher's stress_test.go TestStressSetGet, and
// asserts the cache never grows past its configured bound and never panics
// under concurrent access.
func TestStressConcurrentGetPut(t *testing.T) {
	cfg, err := config.New(config.WithMaximumSize(64), config.WithWindowSize(8))
	require.NoError(t, err)
	c, err := New[int, int](cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < runtime.GOMAXPROCS(0); g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := (seed*7919 + i) % 200
				c.Put(k, k*k)
				c.Get(k)
			}
		}(g)
	}
	wg.Wait()

	require.LessOrEqual(t, c.Size(), 64)
	stats := c.Statistics()
	require.Equal(t, stats.HitCount+stats.MissCount, stats.TotalAccessCount)
}

// TestStressStatisticsConsistent exercises only Put/Get from a single
// goroutine so the total access count can be checked exactly, complementing
// the concurrent stress test above, which checks only the size bound and
// hits + misses = total.
func TestStressStatisticsConsistent(t *testing.T) {
	cfg, err := config.New(config.WithMaximumSize(16))
	require.NoError(t, err)
	c, err := New[string, int](cfg)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
	}
	for i := 0; i < 32; i++ {
		c.Get(fmt.Sprintf("k%d", i))
	}

	stats := c.Statistics()
	require.Equal(t, stats.HitCount+stats.MissCount, stats.TotalAccessCount)
	require.Equal(t, uint64(32), stats.TotalAccessCount)
}
