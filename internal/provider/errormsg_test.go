package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage_KnownCode(t *testing.T) {
	msg := ErrorMessage("expired_card", "")
	assert.Equal(t, "The card has expired. Check the expiration date or use a different card.", msg)
}

func TestErrorMessage_CardDeclinedComposesDeclineCode(t *testing.T) {
	msg := ErrorMessage("card_declined", "insufficient_funds")
	assert.Equal(t, "The card has been declined. The card has insufficient funds to complete the purchase.", msg)
}

func TestErrorMessage_CardDeclinedUnknownDeclineCode(t *testing.T) {
	msg := ErrorMessage("card_declined", "some_future_code")
	assert.Equal(t, "The card has been declined. "+unknownErrorMessage, msg)
}

func TestErrorMessage_CardDeclinedWithoutDeclineCode(t *testing.T) {
	msg := ErrorMessage("card_declined", "")
	assert.Equal(t, "The card has been declined. "+notAvailableMessage, msg)
}

func TestErrorMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, unknownErrorMessage, ErrorMessage("not_a_real_code", ""))
}

func TestErrorMessage_EmptyCode(t *testing.T) {
	assert.Equal(t, notAvailableMessage, ErrorMessage("", ""))
}
