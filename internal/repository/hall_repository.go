package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// HallRepo provides methods to create and retrieve halls.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallColumns = `id, uid, cinema_id, name, seat_rows, seat_cols, is_active, created_at, updated_at`

func scanHall(row interface{ Scan(...any) error }) (*model.Hall, error) {
	var h model.Hall
	if err := row.Scan(&h.ID, &h.UID, &h.CinemaID, &h.Name, &h.SeatRows, &h.SeatCols, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a new hall.  The hall must have CinemaID, Name and its
// grid dimensions set.  After insert the row is re-read so is_active and
// the timestamps are populated.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (uid, cinema_id, name, seat_rows, seat_cols) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.UID, h.CinemaID, h.Name, h.SeatRows, h.SeatCols)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	fresh, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *fresh
	return nil
}

// GetByID retrieves a hall by its primary key.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	h, err := scanHall(r.db.QueryRowContext(ctx, `SELECT `+hallColumns+` FROM halls WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	return h, err
}

// GetByUID retrieves a hall by its public identifier.
func (r *HallRepo) GetByUID(ctx context.Context, uid string) (*model.Hall, error) {
	h, err := scanHall(r.db.QueryRowContext(ctx, `SELECT `+hallColumns+` FROM halls WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	return h, err
}

// ListByCinema returns all halls inside a cinema ordered by id.
func (r *HallRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE cinema_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hall
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpdateByUID updates hall fields (name, grid dimensions, active flag).
// Returns ErrHallNotFound when no row matches.  Callers that shrink the
// grid must regenerate the hall's seats afterwards.
func (r *HallRepo) UpdateByUID(ctx context.Context, uid, name string, seatRows, seatCols uint32, isActive bool) error {
	const q = `UPDATE halls
	           SET name = ?, seat_rows = ?, seat_cols = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, name, seatRows, seatCols, isActive, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// DeleteByUID removes a hall.  A hall with scheduled showtimes cannot be
// deleted and yields ErrConflict.
func (r *HallRepo) DeleteByUID(ctx context.Context, uid string) error {
	var n uint64
	const qCount = `SELECT COUNT(*) FROM showtimes s JOIN halls h ON h.id = s.hall_id WHERE h.uid = ?`
	if err := r.db.QueryRowContext(ctx, qCount, uid).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}
