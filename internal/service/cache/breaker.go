package cache

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/metrics"
)

// newBreaker opens after threshold consecutive Redis failures. While open,
// cache calls are rejected without touching the network; after cooldown a
// single trial call decides whether to close again.
func newBreaker(threshold uint32, cooldown time.Duration, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	if threshold == 0 {
		threshold = 1
	}

	metrics.SetCacheBreakerState(breakerStateValue(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "response-cache",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.SetCacheBreakerState(breakerStateValue(to))
			if to == gobreaker.StateOpen {
				logger.Warn("Response cache breaker opened",
					zap.String("name", name),
					zap.Duration("cooldown", cooldown))
				return
			}
			logger.Info("Response cache breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
