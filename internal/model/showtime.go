package model

import "time"

// Showtime is a scheduled screening of a movie in a specific hall.  StartsAt
// and EndsAt are stored with the cinema's UTC offset baked in, produced by
// the showing-window formatter.  Corresponds to a row in the `showtimes`
// table.
//
// Fields:
//  ID              – primary key identifier.
//  UID             – public identifier exposed over the API.
//  MovieID         – movie being screened.
//  HallID          – hall where the screening takes place.
//  StartsAt        – instant the screening begins (must precede EndsAt).
//  EndsAt          – instant the screening ends.
//  AdultPriceCents – adult ticket price in cents.
//  ChildPriceCents – child ticket price in cents.
//  Status          – SCHEDULED, CANCELLED or FINISHED.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Showtime struct {
	ID              uint64    // showtimes.id
	UID             string    // showtimes.uid
	MovieID         uint64    // showtimes.movie_id
	HallID          uint64    // showtimes.hall_id
	StartsAt        time.Time // showtimes.starts_at
	EndsAt          time.Time // showtimes.ends_at
	AdultPriceCents uint32    // showtimes.adult_price_cents
	ChildPriceCents uint32    // showtimes.child_price_cents
	Status          string    // showtimes.status
	CreatedAt       time.Time // showtimes.created_at
	UpdatedAt       time.Time // showtimes.updated_at
}
