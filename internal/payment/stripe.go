// Package payment wraps the payment provider behind a small interface so
// the checkout handler can be exercised without network access.  The real
// implementation creates Stripe Checkout sessions; the customer is
// redirected to the returned URL and Stripe redirects back once the charge
// settles.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// CheckoutRequest describes one ticket purchase to open a session for.
type CheckoutRequest struct {
	PaymentUID  string            // our payment identifier, carried in metadata
	UserEmail   string            // receipt address
	Description string            // line item label, e.g. movie title and time
	AmountCents int64             // total in the currency's smallest unit
	Currency    string            // ISO code, lowercase (e.g. "eur")
	SeatCount   int64             // number of seats covered by the total
	Metadata    map[string]string // extra keys propagated to the provider
}

// CheckoutSession is the provider-side session the customer completes.
type CheckoutSession struct {
	ID          string // provider session identifier
	RedirectURL string // where to send the customer
}

// Checkout is implemented by anything able to open a checkout session.
type Checkout interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

// StripeCheckout creates Stripe Checkout sessions.
type StripeCheckout struct {
	successURL string
	cancelURL  string
}

// NewStripeCheckout configures the global Stripe key and returns a client.
// successURL and cancelURL are where Stripe redirects the customer after
// completing or abandoning the session.
func NewStripeCheckout(secretKey, successURL, cancelURL string) (*StripeCheckout, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	stripe.Key = secretKey
	return &StripeCheckout{successURL: successURL, cancelURL: cancelURL}, nil
}

// sessionParams builds the Stripe session parameters. A single quantity-one
// line item carries the full total, so the charge always equals AmountCents
// even when the total is not divisible by the seat count (adult and child
// tickets price differently). The seat count travels in the description and
// metadata instead.
func (s *StripeCheckout) sessionParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	seats := req.SeatCount
	if seats < 1 {
		seats = 1
	}
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.UserEmail),
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(req.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%s (%d seats)", req.Description, seats)),
				},
			},
		}},
	}
	params.Metadata = map[string]string{
		"payment_uid": req.PaymentUID,
		"seat_count":  fmt.Sprintf("%d", seats),
	}
	for k, v := range req.Metadata {
		params.Metadata[k] = v
	}
	return params
}

// CreateSession opens a payment-mode Checkout session covering the whole
// selection.
func (s *StripeCheckout) CreateSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if req.AmountCents <= 0 {
		return CheckoutSession{}, fmt.Errorf("amount must be positive")
	}
	params := s.sessionParams(req)
	params.Context = ctx
	sess, err := session.New(params)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	return CheckoutSession{ID: sess.ID, RedirectURL: sess.URL}, nil
}
