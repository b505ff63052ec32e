package provider

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// StateChangeFunc is notified when the charge circuit changes state.
type StateChangeFunc func(name string, from, to gobreaker.State)

// BreakerGateway wraps a Gateway with a circuit breaker around Charge.
// Linking operations pass through: they are rare, user-driven, and a
// tripped charge circuit must not block account management.
type BreakerGateway struct {
	Gateway
	breaker *gobreaker.CircuitBreaker[*ChargeResult]
}

func NewBreakerGateway(inner Gateway, onStateChange StateChangeFunc) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:        "provider-charge",
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		// A declined card is a healthy provider answering; only
		// transport and server failures count against the circuit.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var declined *ChargeDeclinedError
			return errors.As(err, &declined)
		},
	}
	if onStateChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onStateChange(name, from, to)
		}
	}

	return &BreakerGateway{
		Gateway: inner,
		breaker: gobreaker.NewCircuitBreaker[*ChargeResult](settings),
	}
}

func (g *BreakerGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	return g.breaker.Execute(func() (*ChargeResult, error) {
		return g.Gateway.Charge(ctx, req)
	})
}

// State reports the current circuit state.
func (g *BreakerGateway) State() gobreaker.State {
	return g.breaker.State()
}
