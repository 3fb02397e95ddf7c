package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// MovieRepo provides methods to create and retrieve movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, uid, title, poster_url, runtime_min, is_active, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	if err := row.Scan(&m.ID, &m.UID, &m.Title, &m.PosterURL, &m.RuntimeMin, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new movie and re-reads the row to populate defaults.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (uid, title, poster_url, runtime_min) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.UID, m.Title, m.PosterURL, m.RuntimeMin)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}

// GetByID retrieves a movie by its primary key.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	return m, err
}

// GetByUID retrieves a movie by its public identifier.
func (r *MovieRepo) GetByUID(ctx context.Context, uid string) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	return m, err
}

// ListAll returns movies ordered by title.  When activeOnly is set only
// movies that can currently be scheduled are returned.
func (r *MovieRepo) ListAll(ctx context.Context, activeOnly bool) ([]*model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateByUID updates title, poster, runtime and active flag.  Returns
// ErrMovieNotFound when no row matches.
func (r *MovieRepo) UpdateByUID(ctx context.Context, uid, title, posterURL string, runtimeMin uint32, isActive bool) error {
	const q = `UPDATE movies
	           SET title = ?, poster_url = ?, runtime_min = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, title, posterURL, runtimeMin, isActive, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// DeleteByUID removes a movie.  A movie referenced by showtimes cannot be
// deleted and yields ErrConflict.
func (r *MovieRepo) DeleteByUID(ctx context.Context, uid string) error {
	var n uint64
	const qCount = `SELECT COUNT(*) FROM showtimes s JOIN movies m ON m.id = s.movie_id WHERE m.uid = ?`
	if err := r.db.QueryRowContext(ctx, qCount, uid).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
