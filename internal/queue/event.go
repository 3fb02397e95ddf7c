// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentCompletedEvent is published when a checkout settles and its seats
// flip to SOLD.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type PaymentCompletedEvent struct {
	PaymentUID  string   `json:"payment_uid"`
	UserEmail   string   `json:"user_email"`
	ShowtimeUID string   `json:"showtime_uid"`
	MovieTitle  string   `json:"movie_title"`
	CinemaName  string   `json:"cinema_name"`
	HallName    string   `json:"hall_name"`
	StartsAt    string   `json:"starts_at"`
	SeatUIDs    []string `json:"seat_uids"`
	AmountCents uint32   `json:"amount_cents"`
	Currency    string   `json:"currency"`
	CompletedAt string   `json:"completed_at"`
}
