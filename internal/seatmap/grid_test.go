package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_BindsSeatsToCells(t *testing.T) {
	seats := []Seat{
		{UID: "s1", Row: 1, Col: 1, Status: StatusFree, Active: true},
		{UID: "s2", Row: 1, Col: 2, Status: StatusSold, Active: true},
	}
	g, err := Build(2, 3, seats)
	require.NoError(t, err)

	require.Len(t, g.Cells, 2)
	for _, row := range g.Cells {
		require.Len(t, row, 3)
	}

	assert.True(t, g.Cells[0][0].Selectable(), "(1,1) is FREE")
	assert.False(t, g.Cells[0][1].Selectable(), "(1,2) is SOLD")
	for _, pos := range [][2]int{{0, 2}, {1, 0}, {1, 1}, {1, 2}} {
		cell := g.Cells[pos[0]][pos[1]]
		assert.Nil(t, cell.Seat, "cell (%d,%d) has no backing record", pos[0]+1, pos[1]+1)
		assert.False(t, cell.Selectable())
	}
}

func TestBuild_GridAlwaysComplete(t *testing.T) {
	tests := []struct {
		name  string
		rows  uint32
		cols  uint32
		seats []Seat
	}{
		{name: "no seats", rows: 4, cols: 5},
		{name: "partial seats", rows: 4, cols: 5, seats: []Seat{{UID: "a", Row: 2, Col: 3}}},
		{
			name: "fully seated",
			rows: 2, cols: 2,
			seats: []Seat{
				{UID: "a", Row: 1, Col: 1}, {UID: "b", Row: 1, Col: 2},
				{UID: "c", Row: 2, Col: 1}, {UID: "d", Row: 2, Col: 2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.rows, tt.cols, tt.seats)
			require.NoError(t, err)
			cells := 0
			for _, row := range g.Cells {
				cells += len(row)
			}
			assert.Equal(t, int(tt.rows*tt.cols), cells)
		})
	}
}

func TestBuild_EmptyDimensions(t *testing.T) {
	g, err := Build(0, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Cells)

	g, err = Build(3, 0, nil)
	require.NoError(t, err)
	require.Len(t, g.Cells, 3)
	for _, row := range g.Cells {
		assert.Empty(t, row)
	}
}

func TestBuild_DuplicateCoordinatesFirstWinsFlagged(t *testing.T) {
	seats := []Seat{
		{UID: "first", Row: 1, Col: 1, Status: StatusFree},
		{UID: "second", Row: 1, Col: 1, Status: StatusSold},
	}
	g, err := Build(2, 2, seats)
	require.NoError(t, err)

	require.NotNil(t, g.Cells[0][0].Seat)
	assert.Equal(t, "first", g.Cells[0][0].Seat.UID, "first record keeps the cell")
	require.Len(t, g.Conflicts, 1)
	assert.Equal(t, Conflict{Row: 1, Col: 1, KeptUID: "first", ExtraUID: "second"}, g.Conflicts[0])
}

func TestBuild_OutOfRangeSeatFailsLoudly(t *testing.T) {
	tests := []struct {
		name string
		seat Seat
	}{
		{name: "row too large", seat: Seat{UID: "x", Row: 3, Col: 1}},
		{name: "col too large", seat: Seat{UID: "x", Row: 1, Col: 4}},
		{name: "zero row", seat: Seat{UID: "x", Row: 0, Col: 1}},
		{name: "zero col", seat: Seat{UID: "x", Row: 1, Col: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(2, 3, []Seat{tt.seat})
			assert.ErrorIs(t, err, ErrSeatOutOfRange)
		})
	}
}

func TestCell_AdminInteractiveIgnoresBookingStatus(t *testing.T) {
	sold := Cell{Seat: &Seat{UID: "a", Status: StatusSold, Active: true}}
	assert.True(t, sold.AdminInteractive(), "a sold seat is still provisioned")
	assert.False(t, sold.Selectable())

	inactive := Cell{Seat: &Seat{UID: "b", Status: StatusFree, Active: false}}
	assert.False(t, inactive.AdminInteractive())
	assert.True(t, inactive.Selectable(), "booking status is independent of the admin flag")
}
