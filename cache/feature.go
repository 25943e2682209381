// cache/feature.go

// Package cache provides a small feature-keyed read-through cache. Each
// Feature holds exactly one value (not one per query key) with a fixed
// validity window, matching the dashboard's "today's appointments" and
// "wallet balance" reads.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	logger "github.com/pingwise/clinic-api/logging"
)

// LoaderFunc fetches a fresh value for a feature.
type LoaderFunc[T any] func(ctx context.Context) (T, error)

// Feature is a process-lifetime cache slot: a value and the time it was
// written. A fresh value is served without invoking the loader; an expired
// or missing value triggers a blocking load. Concurrent loads for the same
// feature are collapsed via singleflight. There is no eviction beyond
// overwrite and no invalidation API.
type Feature[T any] struct {
	name           string
	ttl            time.Duration
	refreshAfter   time.Duration // 0 disables background refresh
	loader         LoaderFunc[T]
	now            func() time.Time

	mu        sync.RWMutex
	value     T
	timestamp time.Time
	hasValue  bool

	group singleflight.Group
}

// Option configures a Feature.
type Option[T any] func(*Feature[T])

// WithBackgroundRefresh triggers a non-blocking refresh when a fresh hit is
// older than the given age. The caller still receives the cached value
// immediately.
func WithBackgroundRefresh[T any](after time.Duration) Option[T] {
	return func(f *Feature[T]) { f.refreshAfter = after }
}

// WithClock overrides the time source. Used by tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(f *Feature[T]) { f.now = now }
}

// New creates a Feature with a fixed validity window.
func New[T any](name string, ttl time.Duration, loader LoaderFunc[T], opts ...Option[T]) *Feature[T] {
	f := &Feature[T]{
		name:   name,
		ttl:    ttl,
		loader: loader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get returns the cached value when it is younger than the window,
// otherwise it blocks on a fresh load and overwrites the slot. When a
// load fails but an older value exists, the stale value is served and the
// failure is only logged; these reads are non-critical.
func (f *Feature[T]) Get(ctx context.Context) (T, error) {
	f.mu.RLock()
	value := f.value
	timestamp := f.timestamp
	hasValue := f.hasValue
	f.mu.RUnlock()

	if hasValue {
		age := f.now().Sub(timestamp)
		if age < f.ttl {
			if f.refreshAfter > 0 && age >= f.refreshAfter {
				f.refreshInBackground()
			}
			return value, nil
		}
	}

	fresh, err, _ := f.group.Do(f.name, func() (interface{}, error) {
		v, err := f.loader(ctx)
		if err != nil {
			return nil, err
		}
		f.store(v)
		return v, nil
	})
	if err != nil {
		if hasValue {
			logger.Warn("Feature refresh failed, serving stale value",
				zap.String("feature", f.name), zap.Error(err))
			return value, nil
		}
		var zero T
		return zero, err
	}
	return fresh.(T), nil
}

// Age returns how old the cached value is, and whether one exists.
func (f *Feature[T]) Age() (time.Duration, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasValue {
		return 0, false
	}
	return f.now().Sub(f.timestamp), true
}

func (f *Feature[T]) store(v T) {
	f.mu.Lock()
	f.value = v
	f.timestamp = f.now()
	f.hasValue = true
	f.mu.Unlock()
}

// refreshInBackground starts a fire-and-forget reload. Singleflight makes a
// second call while one is outstanding a no-op.
func (f *Feature[T]) refreshInBackground() {
	go func() {
		_, _, _ = f.group.Do(f.name, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			v, err := f.loader(ctx)
			if err != nil {
				logger.Warn("Background feature refresh failed",
					zap.String("feature", f.name), zap.Error(err))
				return nil, err
			}
			f.store(v)
			return v, nil
		})
	}()
}
