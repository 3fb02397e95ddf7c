package model

import "time"

// Hall represents an individual screening hall within a cinema.  SeatRows
// and SeatCols define the hall's grid and are the authority for seat-map
// rendering: seat records are sparse relative to rows×cols and a position
// without a record renders as a gap.  Corresponds to a row in the `halls`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  UID       – public identifier exposed over the API.
//  CinemaID  – cinema the hall belongs to.
//  Name      – unique hall name per cinema.
//  SeatRows  – number of seating rows (0 renders an empty grid).
//  SeatCols  – number of seats per row (0 renders an empty grid).
//  IsActive  – whether the hall accepts new showings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    // halls.id
	UID       string    // halls.uid
	CinemaID  uint64    // halls.cinema_id
	Name      string    // halls.name
	SeatRows  uint32    // halls.seat_rows
	SeatCols  uint32    // halls.seat_cols
	IsActive  bool      // halls.is_active
	CreatedAt time.Time // halls.created_at
	UpdatedAt time.Time // halls.updated_at
}
