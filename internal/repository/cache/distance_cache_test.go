package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/center-assignment/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestDistanceCache_GetSet(t *testing.T) {
	c := NewDistanceCache(time.Minute, zap.NewNop())

	_, ok := c.Get("a|b")
	assert.False(t, ok)

	want := domain.DistanceResult{DistanceKm: 4.2, Geometry: "_p~iF~ps|U", Source: domain.SourceRouting}
	c.Set("a|b", want)

	got, ok := c.Get("a|b")
	require.True(t, ok)
	assert.Equal(t, want, got)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(60000), stats.TTLMs)
}

func TestDistanceCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewDistanceCache(300*time.Second, zap.NewNop(), WithClock(clock.Now))

	c.Set("k", domain.DistanceResult{DistanceKm: 1})

	clock.Advance(299 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 0, stats.Size, "expired entry is evicted on lookup")
	assert.Equal(t, int64(1), stats.Expired)
}

func TestDistanceCache_Clear(t *testing.T) {
	c := NewDistanceCache(time.Minute, nil)
	c.Set("a", domain.DistanceResult{})
	c.Set("b", domain.DistanceResult{})

	c.Clear()

	assert.Equal(t, 0, c.Stats().Size)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDistanceCache_ConcurrentAccess(t *testing.T) {
	c := NewDistanceCache(time.Minute, zap.NewNop())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", i)
				c.Set(key, domain.DistanceResult{DistanceKm: float64(i)})
				v, ok := c.Get(key)
				if assert.True(t, ok) {
					assert.Equal(t, float64(i), v.DistanceKm)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Stats().Size)
}
