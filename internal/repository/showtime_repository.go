package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/showtime"
)

// ShowtimeRepo encapsulates database operations for showtimes.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo given a DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span this repository and others.
func (r *ShowtimeRepo) DB() *sql.DB {
	return r.db
}

const showtimeColumns = `id, uid, movie_id, hall_id, starts_at, ends_at, adult_price_cents, child_price_cents, status, created_at, updated_at`

func scanShowtime(row interface{ Scan(...any) error }) (*model.Showtime, error) {
	var s model.Showtime
	if err := row.Scan(&s.ID, &s.UID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt,
		&s.AdultPriceCents, &s.ChildPriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new showtime.  Instants are stored in UTC; the
// timezone-qualified wire strings are recomputed from the cinema's zone
// whenever a response needs them.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	const q = `INSERT INTO showtimes (uid, movie_id, hall_id, starts_at, ends_at, adult_price_cents, child_price_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.UID, s.MovieID, s.HallID,
		s.StartsAt.UTC(), s.EndsAt.UTC(), s.AdultPriceCents, s.ChildPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	fresh, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// GetByID retrieves a showtime by its primary key.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	s, err := scanShowtime(r.db.QueryRowContext(ctx, `SELECT `+showtimeColumns+` FROM showtimes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowtimeNotFound
	}
	return s, err
}

// GetByUID retrieves a showtime by its public identifier.
func (r *ShowtimeRepo) GetByUID(ctx context.Context, uid string) (*model.Showtime, error) {
	s, err := scanShowtime(r.db.QueryRowContext(ctx, `SELECT `+showtimeColumns+` FROM showtimes WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowtimeNotFound
	}
	return s, err
}

// ListForCinemaBetween returns the grouper input records for one cinema and
// one local calendar day, expressed as a UTC instant range computed by the
// caller in the cinema's zone.  Records come back ordered by start time so
// groups keep chronological slot order without re-sorting.
func (r *ShowtimeRepo) ListForCinemaBetween(ctx context.Context, cinemaID uint64, from, to time.Time) ([]showtime.Record, error) {
	const q = `SELECT s.uid, m.uid, m.title, m.poster_url, h.name, c.name,
	                  s.starts_at, s.ends_at, s.adult_price_cents, s.child_price_cents
	           FROM showtimes s
	           JOIN movies m  ON m.id = s.movie_id
	           JOIN halls h   ON h.id = s.hall_id
	           JOIN cinemas c ON c.id = h.cinema_id
	           WHERE c.id = ? AND s.status = 'SCHEDULED' AND s.starts_at >= ? AND s.starts_at < ?
	           ORDER BY s.starts_at, s.id`
	rows, err := r.db.QueryContext(ctx, q, cinemaID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []showtime.Record
	for rows.Next() {
		var rec showtime.Record
		if err := rows.Scan(&rec.UID, &rec.MovieUID, &rec.MovieTitle, &rec.PosterURL,
			&rec.HallName, &rec.CinemaName, &rec.StartsAt, &rec.EndsAt,
			&rec.AdultPriceCents, &rec.ChildPriceCents); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByHall returns all showtimes scheduled in a hall, newest first.  Used
// by the admin back office.
func (r *ShowtimeRepo) ListByHall(ctx context.Context, hallID uint64) ([]*model.Showtime, error) {
	const q = `SELECT ` + showtimeColumns + ` FROM showtimes WHERE hall_id = ? ORDER BY starts_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Showtime
	for rows.Next() {
		s, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountOverlapping reports how many scheduled showtimes in a hall intersect
// the [start, end) window.  Used to reject double-booked halls before
// creating a showing.
func (r *ShowtimeRepo) CountOverlapping(ctx context.Context, hallID uint64, start, end time.Time) (uint64, error) {
	const q = `SELECT COUNT(*) FROM showtimes
	           WHERE hall_id = ? AND status = 'SCHEDULED' AND starts_at < ? AND ends_at > ?`
	var n uint64
	err := r.db.QueryRowContext(ctx, q, hallID, end.UTC(), start.UTC()).Scan(&n)
	return n, err
}

// UpdateStatusByUID transitions a showtime between SCHEDULED, CANCELLED and
// FINISHED.  Returns ErrShowtimeNotFound when no row matches.
func (r *ShowtimeRepo) UpdateStatusByUID(ctx context.Context, uid, status string) error {
	const q = `UPDATE showtimes SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE uid = ?`
	res, err := r.db.ExecContext(ctx, q, status, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}

// DeleteByUID removes a showtime.  Showtimes with payments attached cannot
// be deleted and yield ErrConflict; cancel them instead.
func (r *ShowtimeRepo) DeleteByUID(ctx context.Context, uid string) error {
	var n uint64
	const qCount = `SELECT COUNT(*) FROM payments p JOIN showtimes s ON s.id = p.showtime_id WHERE s.uid = ?`
	if err := r.db.QueryRowContext(ctx, qCount, uid).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	// Seat states reference the showtime and must go first.
	const qSeats = `DELETE ss FROM showtime_seats ss JOIN showtimes s ON s.id = ss.showtime_id WHERE s.uid = ?`
	if _, err := r.db.ExecContext(ctx, qSeats, uid); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM showtimes WHERE uid = ?`, uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
