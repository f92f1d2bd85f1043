package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/liqma/backend/internal/metrics"
)

const breakerName = "featured-cache"

// BreakerSettings tunes a BreakerFeaturedCache.
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

// DefaultBreakerSettings opens after five failures in a row for 30s.
var DefaultBreakerSettings = BreakerSettings{ConsecutiveFailures: 5, Timeout: 30 * time.Second}

// BreakerFeaturedCache stops calling a failing cache for a while so a Redis
// outage costs one fast error per request instead of a dial timeout.
type BreakerFeaturedCache struct {
	next FeaturedCache
	cb   *gobreaker.CircuitBreaker[any]
}

type lookup struct {
	ids []uuid.UUID
	ok  bool
}

func NewBreakerFeaturedCache(next FeaturedCache, s BreakerSettings, log *zap.Logger) *BreakerFeaturedCache {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return &BreakerFeaturedCache{next: next, cb: cb}
}

func (b *BreakerFeaturedCache) Get(ctx context.Context, key string) ([]uuid.UUID, bool, error) {
	res, err := b.cb.Execute(func() (any, error) {
		ids, ok, err := b.next.Get(ctx, key)
		return lookup{ids: ids, ok: ok}, err
	})
	if err != nil {
		return nil, false, err
	}
	l := res.(lookup)
	return l.ids, l.ok, nil
}

func (b *BreakerFeaturedCache) Set(ctx context.Context, key string, ids []uuid.UUID) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Set(ctx, key, ids)
	})
	return err
}

// Invalidate always reaches the underlying cache; skipping it would leave
// stale grids behind once the breaker closes.
func (b *BreakerFeaturedCache) Invalidate(ctx context.Context) error {
	return b.next.Invalidate(ctx)
}

// State reports the breaker state.
func (b *BreakerFeaturedCache) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
