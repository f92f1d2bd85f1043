package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyCache struct {
	fail        bool
	gets        int
	invalidates int
	stored      map[string][]uuid.UUID
}

var errDown = errors.New("redis down")

func (f *flakyCache) Get(_ context.Context, key string) ([]uuid.UUID, bool, error) {
	f.gets++
	if f.fail {
		return nil, false, errDown
	}
	ids, ok := f.stored[key]
	return ids, ok, nil
}

func (f *flakyCache) Set(_ context.Context, key string, ids []uuid.UUID) error {
	if f.fail {
		return errDown
	}
	if f.stored == nil {
		f.stored = map[string][]uuid.UUID{}
	}
	f.stored[key] = ids
	return nil
}

func (f *flakyCache) Invalidate(context.Context) error {
	f.invalidates++
	if f.fail {
		return errDown
	}
	f.stored = nil
	return nil
}

func TestBreakerPassesThroughWhenHealthy(t *testing.T) {
	inner := &flakyCache{}
	b := NewBreakerFeaturedCache(inner, DefaultBreakerSettings, zap.NewNop())
	ctx := context.Background()
	ids := []uuid.UUID{uuid.New()}

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "k", ids))
	got, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ids, got)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyCache{fail: true}
	b := NewBreakerFeaturedCache(inner, BreakerSettings{ConsecutiveFailures: 3, Timeout: time.Hour}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := b.Get(ctx, "k")
		assert.ErrorIs(t, err, errDown)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, _, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.gets)

	// invalidation bypasses the breaker
	assert.ErrorIs(t, b.Invalidate(ctx), errDown)
	assert.Equal(t, 1, inner.invalidates)
}
