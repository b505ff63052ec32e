package provider

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/finbridge/payments/internal/domain/errors"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerGateway_PassesThroughSuccess(t *testing.T) {
	g := NewBreakerGateway(NewMockGateway(WithLatency(time.Millisecond)), nil)

	res, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TransactionID)
	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestBreakerGateway_OpensOnTransportFailures(t *testing.T) {
	g := NewBreakerGateway(NewMockGateway(WithLatency(time.Millisecond), WithTimeoutRate(1.0)), nil)

	for i := 0; i < 15; i++ {
		_, _ = g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
	}

	assert.Equal(t, gobreaker.StateOpen, g.State())

	_, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreakerGateway_DeclinesDoNotTrip(t *testing.T) {
	g := NewBreakerGateway(NewMockGateway(WithLatency(time.Millisecond), WithDeclineRate(1.0)), nil)

	for i := 0; i < 15; i++ {
		_, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
		assert.ErrorIs(t, err, domainErrors.ErrProviderPaymentFailed)
	}

	assert.Equal(t, gobreaker.StateClosed, g.State())
}

func TestBreakerGateway_StateChangeCallback(t *testing.T) {
	var transitions []gobreaker.State
	g := NewBreakerGateway(
		NewMockGateway(WithLatency(time.Millisecond), WithTimeoutRate(1.0)),
		func(name string, from, to gobreaker.State) {
			transitions = append(transitions, to)
		},
	)

	for i := 0; i < 15; i++ {
		_, _ = g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
	}

	require.NotEmpty(t, transitions)
	assert.Equal(t, gobreaker.StateOpen, transitions[len(transitions)-1])
}

func TestBreakerGateway_LinkingPassesThroughWhenOpen(t *testing.T) {
	g := NewBreakerGateway(NewMockGateway(WithLatency(time.Millisecond), WithTimeoutRate(1.0)), nil)

	for i := 0; i < 15; i++ {
		_, _ = g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Currency: "GBP"})
	}
	require.Equal(t, gobreaker.StateOpen, g.State())

	link, err := g.ExchangeAuthCode(context.Background(), "ac_code")
	require.NoError(t, err)
	assert.NotEmpty(t, link.ProviderAccountID)
}
