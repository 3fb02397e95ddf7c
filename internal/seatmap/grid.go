// Package seatmap builds renderable seat grids from a hall's dimensions and
// a sparse seat listing, and tracks the ephemeral set of seats a customer
// has picked before checkout.  Both halves are pure in-memory operations:
// fetching the seats and persisting anything is the caller's job.
package seatmap

import (
	"errors"
	"fmt"
)

// Status is the booking state of a seat for a specific showtime.
type Status string

const (
	StatusFree     Status = "FREE"
	StatusReserved Status = "RESERVED"
	StatusSold     Status = "SOLD"
	StatusBlocked  Status = "BLOCKED"
)

// Seat is one addressable position in a hall.  Row and Col are 1-based.
// Status drives the customer seat picker; Active is the admin provisioning
// flag and is independent of booking state.
type Seat struct {
	UID    string `json:"uid"`
	Row    uint32 `json:"row"`
	Col    uint32 `json:"col"`
	Status Status `json:"status"`
	Active bool   `json:"active"`
}

// Cell is one grid position.  Seat is nil when no record backs the cell, in
// which case the position renders as a gap and is never interactive.
type Cell struct {
	Seat *Seat `json:"seat"`
}

// Conflict records a data-integrity violation found while placing seats:
// two records claiming the same (row, col).  The first record keeps the
// cell; the conflict is surfaced so the admin screen can flag it.
type Conflict struct {
	Row      uint32 `json:"row"`
	Col      uint32 `json:"col"`
	KeptUID  string `json:"kept_uid"`
	ExtraUID string `json:"extra_uid"`
}

// Grid is the complete R×C layout.  Cells always holds exactly Rows×Cols
// entries regardless of how many seat records were supplied.
type Grid struct {
	Rows      uint32     `json:"rows"`
	Cols      uint32     `json:"cols"`
	Cells     [][]Cell   `json:"cells"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// ErrSeatOutOfRange is returned when a seat record's coordinates fall
// outside the hall's configured dimensions.  That shape is malformed input,
// not a render concern, so the builder fails loudly instead of guessing.
var ErrSeatOutOfRange = errors.New("seat coordinates out of range")

// Build produces the grid for a hall of rows×cols positions from a sparse
// seat listing.  Zero rows or cols yield an empty grid.  A cell with no
// matching record stays empty.  Duplicate (row, col) records are a
// data-integrity condition: the first record wins and every extra record is
// reported in Grid.Conflicts so the caller can flag it upstream.
func Build(rows, cols uint32, seats []Seat) (*Grid, error) {
	g := &Grid{Rows: rows, Cols: cols, Cells: make([][]Cell, rows)}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, cols)
	}
	for i := range seats {
		s := &seats[i]
		if s.Row < 1 || s.Row > rows || s.Col < 1 || s.Col > cols {
			return nil, fmt.Errorf("%w: seat %s at (%d,%d) in %dx%d hall",
				ErrSeatOutOfRange, s.UID, s.Row, s.Col, rows, cols)
		}
		cell := &g.Cells[s.Row-1][s.Col-1]
		if cell.Seat != nil {
			g.Conflicts = append(g.Conflicts, Conflict{
				Row:      s.Row,
				Col:      s.Col,
				KeptUID:  cell.Seat.UID,
				ExtraUID: s.UID,
			})
			continue
		}
		cell.Seat = s
	}
	return g, nil
}

// Selectable reports whether a customer may toggle the cell into their
// selection: only cells backed by a FREE seat qualify.
func (c Cell) Selectable() bool {
	return c.Seat != nil && c.Seat.Status == StatusFree
}

// AdminInteractive reports whether the admin seat manager treats the cell as
// live.  This is the provisioning flag, independent of booking status.
func (c Cell) AdminInteractive() bool {
	return c.Seat != nil && c.Seat.Active
}
