package model

import "time"

// Movie is a title that can be scheduled in showings.  RuntimeMin feeds the
// showing-window computation: end = start + runtime.  Corresponds to a row
// in the `movies` table.
//
// Fields:
//  ID         – primary key identifier.
//  UID        – public identifier exposed over the API.
//  Title      – display title (not unique; two movies may share one).
//  PosterURL  – poster image shown in listings.
//  RuntimeMin – runtime in minutes.
//  IsActive   – whether the movie can be scheduled.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Movie struct {
	ID         uint64    // movies.id
	UID        string    // movies.uid
	Title      string    // movies.title
	PosterURL  string    // movies.poster_url
	RuntimeMin uint32    // movies.runtime_min
	IsActive   bool      // movies.is_active
	CreatedAt  time.Time // movies.created_at
	UpdatedAt  time.Time // movies.updated_at
}
