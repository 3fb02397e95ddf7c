package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// SeatRepo provides methods to work with hall seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatColumns = `id, uid, hall_id, row_num, col_num, is_active, created_at, updated_at`

func scanSeat(row interface{ Scan(...any) error }) (*model.Seat, error) {
	var s model.Seat
	if err := row.Scan(&s.ID, &s.UID, &s.HallID, &s.RowNum, &s.ColNum, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateBulk inserts multiple seats in a single statement.  Used when a
// hall's grid is provisioned or regenerated.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (uid, hall_id, row_num, col_num) VALUES `
	args := make([]any, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.UID, s.HallID, s.RowNum, s.ColNum)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByHall retrieves all seats of a hall ordered by row then column.
func (r *SeatRepo) GetByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	const q = `SELECT ` + seatColumns + ` FROM seats WHERE hall_id = ? ORDER BY row_num, col_num`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// GetByUID retrieves a seat by its public identifier.
func (r *SeatRepo) GetByUID(ctx context.Context, uid string) (*model.Seat, error) {
	s, err := scanSeat(r.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	return s, err
}

// GetByUIDs resolves a batch of seat UIDs to seat rows.  Missing UIDs are
// simply absent from the result; callers compare lengths when every seat
// must exist.
func (r *SeatRepo) GetByUIDs(ctx context.Context, uids []string) ([]model.Seat, error) {
	if len(uids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + seatColumns + ` FROM seats WHERE uid IN (`
	args := make([]any, 0, len(uids))
	for i, uid := range uids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, uid)
	}
	query += `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// UIDsByIDs resolves numeric seat IDs back to public identifiers, in the
// input IDs' numeric order.  Unknown IDs are skipped.
func (r *SeatRepo) UIDsByIDs(ctx context.Context, ids []uint64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT uid FROM seats WHERE id IN (`
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, rows.Err()
}

// SetActiveByUID flips a seat's provisioning flag.  Returns ErrSeatNotFound
// when no row matches.
func (r *SeatRepo) SetActiveByUID(ctx context.Context, uid string, active bool) error {
	const q = `UPDATE seats SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, active, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteByHall removes all seats of a hall.  Used when the hall's grid
// dimensions change and the seats are regenerated.  Callers verify the hall
// first; no ownership check happens here.
func (r *SeatRepo) DeleteByHall(ctx context.Context, hallID uint64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM seats WHERE hall_id = ?`, hallID)
	return err
}
