package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStripeCheckoutRequiresKey(t *testing.T) {
	_, err := NewStripeCheckout("", "https://x/success", "https://x/cancel")
	assert.Error(t, err)

	ck, err := NewStripeCheckout("sk_test_123", "https://x/success", "https://x/cancel")
	require.NoError(t, err)
	assert.NotNil(t, ck)
}

func TestCreateSessionRejectsNonPositiveAmount(t *testing.T) {
	ck, err := NewStripeCheckout("sk_test_123", "https://x/success", "https://x/cancel")
	require.NoError(t, err)

	_, err = ck.CreateSession(context.Background(), CheckoutRequest{
		PaymentUID:  "p1",
		UserEmail:   "a@b.c",
		AmountCents: 0,
	})
	assert.Error(t, err)
}

// Two adult tickets at 1200 plus one child at 800 make 3200, which does not
// divide by three seats. The charge must still be the exact total.
func TestSessionParamsChargeExactTotal(t *testing.T) {
	ck, err := NewStripeCheckout("sk_test_123", "https://x/success", "https://x/cancel")
	require.NoError(t, err)

	params := ck.sessionParams(CheckoutRequest{
		PaymentUID:  "p1",
		UserEmail:   "a@b.c",
		Description: "Heat 2026-03-01 20:00",
		AmountCents: 3200,
		Currency:    "eur",
		SeatCount:   3,
	})

	require.Len(t, params.LineItems, 1)
	item := params.LineItems[0]
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, int64(3200), *item.PriceData.UnitAmount)
	assert.Equal(t, "Heat 2026-03-01 20:00 (3 seats)", *item.PriceData.ProductData.Name)
	assert.Equal(t, "3", params.Metadata["seat_count"])
	assert.Equal(t, "p1", params.Metadata["payment_uid"])
}
