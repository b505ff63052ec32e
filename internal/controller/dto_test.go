package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountCents(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"10.50", 1050, true},
		{"0.01", 1, true},
		{"125", 12500, true},
		{"99999999.99", 9999999999, true},
		{"10.505", 0, false}, // sub-cent precision
		{"0", 0, false},
		{"0.00", 0, false},
		{"-4.20", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		cents, err := parseAmountCents(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.cents, cents, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, "10.50", centsToAmount(1050))
	assert.Equal(t, "0.01", centsToAmount(1))
	assert.Equal(t, "125.00", centsToAmount(12500))
}

func TestToPayRequest(t *testing.T) {
	svcReq, err := toPayRequest(PayRequest{
		Amount:    "42.00",
		Currency:  "GBP",
		Reason:    "booking_deposit",
		CardToken: "tok_mc",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4200, svcReq.AmountCents)
	assert.Equal(t, "GBP", svcReq.Currency)
	assert.EqualValues(t, "booking_deposit", svcReq.Reason)
	assert.Equal(t, "tok_mc", svcReq.SourceCardToken)
}
