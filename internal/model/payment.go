package model

import "time"

// Payment records one checkout for a set of seats on a showtime.  A row is
// created in PENDING state when the checkout session is opened and flips to
// PAID when the payment provider confirms it; the seats move to SOLD at the
// same time.  Corresponds to a row in the `payments` table.
//
// Fields:
//  ID                – primary key identifier.
//  UID               – public identifier exposed over the API.
//  UserEmail         – email the receipt is sent to.
//  ShowtimeID        – showtime the seats belong to.
//  AmountCents       – total charged in cents.
//  Currency          – ISO currency code (e.g. "eur").
//  Status            – PENDING, PAID or FAILED.
//  CheckoutSessionID – identifier of the provider's checkout session.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Payment struct {
	ID                uint64    // payments.id
	UID               string    // payments.uid
	UserEmail         string    // payments.user_email
	ShowtimeID        uint64    // payments.showtime_id
	AmountCents       uint32    // payments.amount_cents
	Currency          string    // payments.currency
	Status            string    // payments.status
	CheckoutSessionID string    // payments.checkout_session_id
	CreatedAt         time.Time // payments.created_at
	UpdatedAt         time.Time // payments.updated_at
}

// PaymentSeat links a payment to one of the seats it covers.
//
// Fields:
//  ID        – primary key identifier.
//  PaymentID – reference to the payment.
//  SeatID    – seat covered by the payment.
type PaymentSeat struct {
	ID        uint64 // payment_seats.id
	PaymentID uint64 // payment_seats.payment_id
	SeatID    uint64 // payment_seats.seat_id
}

// PaymentDayStat is one row of the admin statistics view: totals for a
// single calendar day, computed from PAID payments.
type PaymentDayStat struct {
	Day        string `json:"day"`         // "2006-01-02"
	Count      uint64 `json:"count"`       // number of paid payments
	TotalCents uint64 `json:"total_cents"` // revenue in cents
}
