package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinetick/cinetick/internal/model"
)

// PaymentRepo encapsulates database operations for payments and the
// per-day statistics read model.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo given a DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `id, uid, user_email, showtime_id, amount_cents, currency, status, checkout_session_id, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(&p.ID, &p.UID, &p.UserEmail, &p.ShowtimeID, &p.AmountCents,
		&p.Currency, &p.Status, &p.CheckoutSessionID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTx inserts a PENDING payment inside an existing transaction and
// populates its ID.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments (uid, user_email, showtime_id, amount_cents, currency, status, checkout_session_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, p.UID, p.UserEmail, p.ShowtimeID, p.AmountCents, p.Currency, p.Status, p.CheckoutSessionID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// CreateSeatsBulkTx links a payment to the seats it covers, inside the same
// transaction that created the payment.
func (r *PaymentRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, paymentID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO payment_seats (payment_id, seat_id) VALUES `
	args := make([]any, 0, len(seatIDs)*2)
	for i, seatID := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, paymentID, seatID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByUID retrieves a payment by its public identifier.
func (r *PaymentRepo) GetByUID(ctx context.Context, uid string) (*model.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE uid = ?`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

// GetByCheckoutSession retrieves a payment by the provider's checkout
// session identifier.  Used when the completion webhook fires.
func (r *PaymentRepo) GetByCheckoutSession(ctx context.Context, sessionID string) (*model.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE checkout_session_id = ?`, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

// SeatIDs returns the seat IDs a payment covers.
func (r *PaymentRepo) SeatIDs(ctx context.Context, paymentID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT seat_id FROM payment_seats WHERE payment_id = ? ORDER BY seat_id`, paymentID)
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

// SetCheckoutSession records the provider session identifier once the
// checkout session has been opened.
func (r *PaymentRepo) SetCheckoutSession(ctx context.Context, paymentID uint64, sessionID string) error {
	const q = `UPDATE payments SET checkout_session_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, sessionID, paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// UpdateStatusTx transitions a payment's status inside a transaction.
// Returns ErrPaymentNotFound when no row matches.
func (r *PaymentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, paymentID uint64, status string) error {
	const q = `UPDATE payments SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// StatsByDay aggregates PAID payments per calendar day over the last `days`
// days, newest day first.  This feeds the admin statistics view.
func (r *PaymentRepo) StatsByDay(ctx context.Context, days int) ([]model.PaymentDayStat, error) {
	const q = `SELECT DATE_FORMAT(created_at, '%Y-%m-%d') AS day, COUNT(*), COALESCE(SUM(amount_cents), 0)
	           FROM payments
	           WHERE status = 'PAID' AND created_at >= DATE_SUB(CURDATE(), INTERVAL ? DAY)
	           GROUP BY day
	           ORDER BY day DESC`
	rows, err := r.db.QueryContext(ctx, q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PaymentDayStat
	for rows.Next() {
		var s model.PaymentDayStat
		if err := rows.Scan(&s.Day, &s.Count, &s.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
