// cache/feature_test.go
package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingwise/clinic-api/cache"
	logger "github.com/pingwise/clinic-api/logging"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	m.Run()
}

func TestFeatureServesCachedValueWithinWindow(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	var loads int32
	f := cache.New[int]("loads", 5*time.Minute, func(ctx context.Context) (int, error) {
		atomic.AddInt32(&loads, 1)
		return 42, nil
	}, cache.WithClock[int](clock))

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	// Reads inside the window never invoke the loader.
	now = now.Add(4 * time.Minute)
	for i := 0; i < 10; i++ {
		v, err = f.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestFeatureReloadsAfterExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	var loads int32
	f := cache.New[int]("expiry", 5*time.Minute, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&loads, 1)), nil
	}, cache.WithClock[int](clock))

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(5*time.Minute + time.Second)
	v, err = f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	age, ok := f.Age()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), age)
}

func TestFeatureServesStaleOnLoadFailure(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }

	var fail atomic.Bool
	f := cache.New[string]("stale", time.Minute, func(ctx context.Context) (string, error) {
		if fail.Load() {
			return "", errors.New("upstream down")
		}
		return "fresh", nil
	}, cache.WithClock[string](clock))

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	fail.Store(true)
	now = now.Add(2 * time.Minute)

	v, err = f.Get(context.Background())
	require.NoError(t, err, "a failed refresh with a prior value must not surface an error")
	assert.Equal(t, "fresh", v)
}

func TestFeatureFailsWhenNoValueExists(t *testing.T) {
	f := cache.New[string]("empty", time.Minute, func(ctx context.Context) (string, error) {
		return "", errors.New("upstream down")
	})

	_, err := f.Get(context.Background())
	assert.Error(t, err)
}

func TestFeatureCollapsesConcurrentLoads(t *testing.T) {
	var loads int32
	release := make(chan struct{})

	f := cache.New[int]("concurrent", time.Minute, func(ctx context.Context) (int, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return 7, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}

	// Give the goroutines time to pile onto the same flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestFeatureRefreshesInBackgroundPastThreshold(t *testing.T) {
	var mu sync.Mutex
	current := time.Now()
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		current = current.Add(d)
		mu.Unlock()
	}

	var loads int32
	f := cache.New[int]("refreshing", 10*time.Minute, func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&loads, 1)), nil
	},
		cache.WithClock[int](clock),
		cache.WithBackgroundRefresh[int](5*time.Minute))

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Still fresh, before the refresh threshold: no reload.
	advance(4 * time.Minute)
	v, err = f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	// Past the threshold but inside the window: the hit is served
	// synchronously from cache while the reload runs fire-and-forget.
	advance(2 * time.Minute)
	v, err = f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Age polling does not touch the loader, so exactly one background
	// load runs; the slot's timestamp resets when it lands.
	assert.Eventually(t, func() bool {
		age, ok := f.Age()
		return ok && age == 0
	}, 2*time.Second, 10*time.Millisecond, "background reload never landed")

	v, err = f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}
