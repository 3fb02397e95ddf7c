// Package repository holds data access logic for the domain entities.  This
// file defines sentinel errors reused across multiple repositories.  Higher
// layers use them with errors.Is to map failures to HTTP responses: a
// not-found sentinel becomes 404, ErrForbidden 403, ErrConflict 409.
package repository

import (
	"errors"
	"strings"
)

// ErrCityNotFound is returned when a city lookup yields no rows.
var ErrCityNotFound = errors.New("city not found")

// ErrCinemaNotFound is returned when a cinema lookup yields no rows.
var ErrCinemaNotFound = errors.New("cinema not found")

// ErrHallNotFound is returned when a hall lookup yields no rows.
var ErrHallNotFound = errors.New("hall not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ErrPaymentNotFound is returned when a payment lookup yields no rows.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrUserNotFound is returned when a user lookup yields no rows.
var ErrUserNotFound = errors.New("user not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not touch.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as scheduling a showing that overlaps an existing
// one or deleting a hall that still has showings.  Handlers translate this
// into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is MySQL's duplicate-key error (1062).
// Repositories translate it into ErrConflict so handlers never match on
// driver error strings.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
