package model

import "time"

// Seat describes a physical seat position in a hall.  Seats are uniquely
// identified by their hall plus (row, col); both coordinates are 1-based
// and must lie within the hall's configured dimensions.  IsActive is the
// provisioning flag the admin seat manager toggles; booking state lives on
// ShowtimeSeat because it varies per screening.
//
// Fields:
//  ID        – primary key identifier.
//  UID       – public identifier exposed over the API.
//  HallID    – hall to which this seat belongs.
//  RowNum    – row position within the hall (1-based).
//  ColNum    – column position within the row (1-based).
//  IsActive  – whether the seat is provisioned.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Seat struct {
	ID        uint64    // seats.id
	UID       string    // seats.uid
	HallID    uint64    // seats.hall_id
	RowNum    uint32    // seats.row_num
	ColNum    uint32    // seats.col_num
	IsActive  bool      // seats.is_active
	CreatedAt time.Time // seats.created_at
	UpdatedAt time.Time // seats.updated_at
}

// ShowtimeSeat tracks the booking state of one seat for one showtime.
// There is one record per active hall seat when a showing is created.
// Status is one of FREE, RESERVED, SOLD or BLOCKED.
//
// Fields:
//  ID         – primary key identifier.
//  ShowtimeID – the showtime this state belongs to.
//  SeatID     – the hall seat being tracked.
//  Status     – booking status for this screening.
//  UpdatedAt  – timestamp of the last status change.
type ShowtimeSeat struct {
	ID         uint64    // showtime_seats.id
	ShowtimeID uint64    // showtime_seats.showtime_id
	SeatID     uint64    // showtime_seats.seat_id
	Status     string    // showtime_seats.status
	UpdatedAt  time.Time // showtime_seats.updated_at
}
