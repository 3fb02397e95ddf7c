package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// CinemaRepo provides methods to create and retrieve cinemas.
type CinemaRepo struct {
	db *sql.DB
}

// NewCinemaRepo constructs a CinemaRepo with the given DB handle.
func NewCinemaRepo(db *sql.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

const cinemaColumns = `id, uid, city_id, name, timezone, is_active, created_at, updated_at`

func scanCinema(row interface{ Scan(...any) error }) (*model.Cinema, error) {
	var c model.Cinema
	if err := row.Scan(&c.ID, &c.UID, &c.CityID, &c.Name, &c.Timezone, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new cinema and re-reads the row so defaulted fields
// (is_active, timestamps) come back populated.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	const q = `INSERT INTO cinemas (uid, city_id, name, timezone) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.UID, c.CityID, c.Name, c.Timezone)
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
	c.ID = uint64(id)
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// GetByID retrieves a cinema by its primary key.
func (r *CinemaRepo) GetByID(ctx context.Context, id uint64) (*model.Cinema, error) {
	c, err := scanCinema(r.db.QueryRowContext(ctx, `SELECT `+cinemaColumns+` FROM cinemas WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCinemaNotFound
	}
	return c, err
}

// GetByUID retrieves a cinema by its public identifier.
func (r *CinemaRepo) GetByUID(ctx context.Context, uid string) (*model.Cinema, error) {
	c, err := scanCinema(r.db.QueryRowContext(ctx, `SELECT `+cinemaColumns+` FROM cinemas WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCinemaNotFound
	}
	return c, err
}

// ListByCityUID returns active cinemas in a city for the public browse
// screen, ordered by name.
func (r *CinemaRepo) ListByCityUID(ctx context.Context, cityUID string) ([]*model.Cinema, error) {
	const q = `SELECT ci.id, ci.uid, ci.city_id, ci.name, ci.timezone, ci.is_active, ci.created_at, ci.updated_at
	           FROM cinemas ci
	           JOIN cities c ON c.id = ci.city_id
	           WHERE c.uid = ? AND ci.is_active = 1
	           ORDER BY ci.name`
	return r.queryCinemas(ctx, q, cityUID)
}

// ListAll returns every cinema regardless of active flag.  Used by the
// admin back office.
func (r *CinemaRepo) ListAll(ctx context.Context) ([]*model.Cinema, error) {
	return r.queryCinemas(ctx, `SELECT `+cinemaColumns+` FROM cinemas ORDER BY id`)
}

func (r *CinemaRepo) queryCinemas(ctx context.Context, q string, args ...any) ([]*model.Cinema, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Cinema
	for rows.Next() {
		c, err := scanCinema(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateByUID updates name, timezone and active flag.  Returns
// ErrCinemaNotFound when no row matches.
func (r *CinemaRepo) UpdateByUID(ctx context.Context, uid, name, timezone string, isActive bool) error {
	const q = `UPDATE cinemas
	           SET name = ?, timezone = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, name, timezone, isActive, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCinemaNotFound
	}
	return nil
}

// DeleteByUID removes a cinema.  A cinema that still has halls cannot be
// deleted and yields ErrConflict.
func (r *CinemaRepo) DeleteByUID(ctx context.Context, uid string) error {
	var n uint64
	const qCount = `SELECT COUNT(*) FROM halls h JOIN cinemas c ON c.id = h.cinema_id WHERE c.uid = ?`
	if err := r.db.QueryRowContext(ctx, qCount, uid).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cinemas WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCinemaNotFound
	}
	return nil
}
