package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// CityRepo provides methods to create and retrieve cities.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the given DB handle.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

const cityColumns = `id, uid, name, created_at, updated_at`

func scanCity(row interface{ Scan(...any) error }) (*model.City, error) {
	var c model.City
	if err := row.Scan(&c.ID, &c.UID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new city.  On success the ID field is populated and the
// row is re-read so timestamps are filled in.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	const q = `INSERT INTO cities (uid, name) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.UID, c.Name)
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

// GetByID retrieves a city by its primary key.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*model.City, error) {
	c, err := scanCity(r.db.QueryRowContext(ctx, `SELECT `+cityColumns+` FROM cities WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCityNotFound
	}
	return c, err
}

// GetByUID retrieves a city by its public identifier.
func (r *CityRepo) GetByUID(ctx context.Context, uid string) (*model.City, error) {
	c, err := scanCity(r.db.QueryRowContext(ctx, `SELECT `+cityColumns+` FROM cities WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCityNotFound
	}
	return c, err
}

// ListAll returns every city ordered by name.
func (r *CityRepo) ListAll(ctx context.Context) ([]*model.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+cityColumns+` FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateByUID renames a city.  Returns ErrCityNotFound when no row matches.
func (r *CityRepo) UpdateByUID(ctx context.Context, uid, name string) error {
	const q = `UPDATE cities SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, name, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}

// DeleteByUID removes a city.  Deleting a city that still has cinemas fails
// with ErrConflict so the admin screen can explain the dependency.
func (r *CityRepo) DeleteByUID(ctx context.Context, uid string) error {
	var n uint64
	const qCount = `SELECT COUNT(*) FROM cinemas ci JOIN cities c ON c.id = ci.city_id WHERE c.uid = ?`
	if err := r.db.QueryRowContext(ctx, qCount, uid).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}
