package repository

import (
	"context"
	"database/sql"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/seatmap"
)

// ShowtimeSeatRepo encapsulates database operations for showtime_seats,
// the per-screening booking state of every hall seat.
type ShowtimeSeatRepo struct {
	db *sql.DB
}

// NewShowtimeSeatRepo constructs a ShowtimeSeatRepo given a DB handle.
func NewShowtimeSeatRepo(db *sql.DB) *ShowtimeSeatRepo {
	return &ShowtimeSeatRepo{db: db}
}

// CreateBulk inserts one FREE record per seat for a freshly created
// showtime in a single statement.
func (r *ShowtimeSeatRepo) CreateBulk(ctx context.Context, showtimeID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO showtime_seats (showtime_id, seat_id, status) VALUES `
	args := make([]any, 0, len(seatIDs)*3)
	for i, seatID := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, showtimeID, seatID, string(seatmap.StatusFree))
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListGridSeats returns the seat-grid builder input for a showtime: every
// hall seat joined with its per-screening status.  A seat without a
// showtime_seats row (provisioned after the showing was created) comes back
// BLOCKED so it can never be sold by accident.
func (r *ShowtimeSeatRepo) ListGridSeats(ctx context.Context, showtimeID uint64) ([]seatmap.Seat, error) {
	const q = `SELECT st.uid, st.row_num, st.col_num, st.is_active, COALESCE(ss.status, 'BLOCKED')
	           FROM showtimes s
	           JOIN seats st ON st.hall_id = s.hall_id
	           LEFT JOIN showtime_seats ss ON ss.showtime_id = s.id AND ss.seat_id = st.id
	           WHERE s.id = ?
	           ORDER BY st.row_num, st.col_num, st.id`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []seatmap.Seat
	for rows.Next() {
		var s seatmap.Seat
		var status string
		if err := rows.Scan(&s.UID, &s.Row, &s.Col, &s.Active, &status); err != nil {
			return nil, err
		}
		s.Status = seatmap.Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// FilterFreeTx returns, within a transaction, the subset of seatIDs whose
// status for the showtime is still FREE.  Rows are locked so a concurrent
// checkout cannot sell the same seats.
func (r *ShowtimeSeatRepo) FilterFreeTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, seatIDs []uint64) ([]uint64, error) {
	if len(seatIDs) == 0 {
		return nil, nil
	}
	query := `SELECT seat_id FROM showtime_seats WHERE showtime_id = ? AND status = 'FREE' AND seat_id IN (`
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, showtimeID)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// BulkUpdateStatusTx sets the status of the given seats for a showtime
// inside an existing transaction.
func (r *ShowtimeSeatRepo) BulkUpdateStatusTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, seatIDs []uint64, status seatmap.Status) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `UPDATE showtime_seats SET status = ?, updated_at = CURRENT_TIMESTAMP
	          WHERE showtime_id = ? AND seat_id IN (`
	args := make([]any, 0, len(seatIDs)+2)
	args = append(args, string(status), showtimeID)
	for i, id := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `)`
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByShowtime returns the raw showtime_seats rows, mainly for the admin
// back office and diagnostics.
func (r *ShowtimeSeatRepo) ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.ShowtimeSeat, error) {
	const q = `SELECT id, showtime_id, seat_id, status, updated_at
	           FROM showtime_seats WHERE showtime_id = ? ORDER BY seat_id`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShowtimeSeat
	for rows.Next() {
		var ss model.ShowtimeSeat
		if err := rows.Scan(&ss.ID, &ss.ShowtimeID, &ss.SeatID, &ss.Status, &ss.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}
