package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/cinetick/cinetick/internal/queue"
	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/seatmap"
	queue_publisher "github.com/cinetick/cinetick/internal/service"
)

// CheckoutHandler drives the purchase flow: it reserves the selected seats,
// opens a provider checkout session, and on confirmation marks the payment
// PAID, flips the seats to SOLD and publishes a payment.completed event.
type CheckoutHandler struct {
	Users         *repository.UserRepo
	Cinemas       *repository.CinemaRepo
	Halls         *repository.HallRepo
	Seats         *repository.SeatRepo
	Movies        *repository.MovieRepo
	Showtimes     *repository.ShowtimeRepo
	ShowtimeSeats *repository.ShowtimeSeatRepo
	Payments      *repository.PaymentRepo
	Checkout      payment.Checkout
}

func NewCheckoutHandler(u *repository.UserRepo, cn *repository.CinemaRepo, hl *repository.HallRepo,
	se *repository.SeatRepo, mv *repository.MovieRepo, st *repository.ShowtimeRepo,
	ss *repository.ShowtimeSeatRepo, pm *repository.PaymentRepo, ck payment.Checkout) *CheckoutHandler {
	return &CheckoutHandler{
		Users: u, Cinemas: cn, Halls: hl, Seats: se, Movies: mv,
		Showtimes: st, ShowtimeSeats: ss, Payments: pm, Checkout: ck,
	}
}

type checkoutReq struct {
	ShowtimeUID string   `json:"showtime_uid"`
	SeatUIDs    []string `json:"seat_uids"`
	AmountCents uint32   `json:"amount_cents"`
	Currency    string   `json:"currency"`
}

// dedupeSeatUIDs folds the payload through a seat selection so a seat picked
// twice counts once, keeping first-pick order.
func dedupeSeatUIDs(uids []string) []string {
	sel := seatmap.NewSelection()
	for _, uid := range uids {
		if !sel.Contains(uid) {
			sel.Toggle(uid)
		}
	}
	return sel.UIDs()
}

// setSeatStatus updates a batch of seat states in its own transaction.
func (h *CheckoutHandler) setSeatStatus(ctx context.Context, showtimeID uint64, seatIDs []uint64, status seatmap.Status) error {
	tx, err := h.Showtimes.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := h.ShowtimeSeats.BulkUpdateStatusTx(ctx, tx, showtimeID, seatIDs, status); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// CreateSession validates the selection, reserves the seats, records a
// PENDING payment and returns the provider redirect URL.  Seats are locked
// row-level inside the transaction, so two buyers racing for the same seat
// cannot both pass the FREE check.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShowtimeUID == "" || len(req.SeatUIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime_uid and seat_uids required"})
	}
	if req.AmountCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents required"})
	}
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "eur"
	}
	seatUIDs := dedupeSeatUIDs(req.SeatUIDs)

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID(c))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
	}

	st, err := h.Showtimes.GetByUID(ctx, req.ShowtimeUID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if st.Status != "SCHEDULED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showing is not on sale"})
	}

	seats, err := h.Seats.GetByUIDs(ctx, seatUIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(seats) != len(seatUIDs) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown seat in selection"})
	}
	seatIDs := make([]uint64, 0, len(seats))
	for _, s := range seats {
		if s.HallID != st.HallID {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat belongs to another hall"})
		}
		seatIDs = append(seatIDs, s.ID)
	}

	// Reserve atomically: only seats still FREE survive the filter.
	pmt := &model.Payment{
		UID:         uuid.NewString(),
		UserEmail:   user.Email,
		ShowtimeID:  st.ID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Status:      "PENDING",
	}
	tx, err := h.Showtimes.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
	}
	free, err := h.ShowtimeSeats.FilterFreeTx(ctx, tx, st.ID, seatIDs)
	if err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(free) != len(seatIDs) {
		_ = tx.Rollback()
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat no longer available"})
	}
	if err := h.ShowtimeSeats.BulkUpdateStatusTx(ctx, tx, st.ID, seatIDs, seatmap.StatusReserved); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
	}
	if err := h.Payments.CreateTx(ctx, tx, pmt); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}
	if err := h.Payments.CreateSeatsBulkTx(ctx, tx, pmt.ID, seatIDs); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	movie, err := h.Movies.GetByID(ctx, st.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	sess, err := h.Checkout.CreateSession(ctx, payment.CheckoutRequest{
		PaymentUID:  pmt.UID,
		UserEmail:   user.Email,
		Description: movie.Title + " " + st.StartsAt.UTC().Format("2006-01-02 15:04"),
		AmountCents: int64(req.AmountCents),
		Currency:    currency,
		SeatCount:   int64(len(seatIDs)),
	})
	if err != nil {
		// Release the reservation; the customer never saw a payment page.
		h.releasePayment(ctx, pmt, st.ID, seatIDs)
		log.Printf("checkout session for payment %s: %v", pmt.UID, err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider unavailable"})
	}
	if err := h.Payments.SetCheckoutSession(ctx, pmt.ID, sess.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record session failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"payment_uid":  pmt.UID,
		"redirect_url": sess.RedirectURL,
	})
}

// releasePayment frees reserved seats and marks the payment FAILED after a
// provider error.  Best effort: failures are logged, not propagated.
func (h *CheckoutHandler) releasePayment(ctx context.Context, pmt *model.Payment, showtimeID uint64, seatIDs []uint64) {
	if err := h.setSeatStatus(ctx, showtimeID, seatIDs, seatmap.StatusFree); err != nil {
		log.Printf("release seats for payment %s: %v", pmt.UID, err)
	}
	tx, err := h.Showtimes.DB().BeginTx(ctx, nil)
	if err != nil {
		log.Printf("release payment %s: %v", pmt.UID, err)
		return
	}
	if err := h.Payments.UpdateStatusTx(ctx, tx, pmt.ID, "FAILED"); err != nil {
		_ = tx.Rollback()
		log.Printf("release payment %s: %v", pmt.UID, err)
		return
	}
	_ = tx.Commit()
}

// Confirm finalizes a checkout after the provider redirect.  The session
// identifier ties the request back to its PENDING payment.  Confirming an
// already-PAID payment is a no-op, so redirect replays are harmless.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	pmt, err := h.Payments.GetByCheckoutSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if pmt.Status == "PAID" {
		return c.JSON(http.StatusOK, echo.Map{"payment_uid": pmt.UID, "status": "PAID"})
	}
	if pmt.Status != "PENDING" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "payment is " + pmt.Status})
	}

	seatIDs, err := h.Payments.SeatIDs(ctx, pmt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	tx, err := h.Showtimes.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin failed"})
	}
	if err := h.Payments.UpdateStatusTx(ctx, tx, pmt.ID, "PAID"); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update payment failed"})
	}
	if err := h.ShowtimeSeats.BulkUpdateStatusTx(ctx, tx, pmt.ShowtimeID, seatIDs, seatmap.StatusSold); err != nil {
		_ = tx.Rollback()
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}

	h.publishCompleted(ctx, pmt, seatIDs)

	return c.JSON(http.StatusOK, echo.Map{"payment_uid": pmt.UID, "status": "PAID"})
}

// publishCompleted emits the payment.completed event.  Publishing is best
// effort; the purchase already succeeded.
func (h *CheckoutHandler) publishCompleted(ctx context.Context, pmt *model.Payment, seatIDs []uint64) {
	ev := queue.PaymentCompletedEvent{
		PaymentUID:  pmt.UID,
		UserEmail:   pmt.UserEmail,
		AmountCents: pmt.AmountCents,
		Currency:    pmt.Currency,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if st, err := h.Showtimes.GetByID(ctx, pmt.ShowtimeID); err == nil {
		ev.ShowtimeUID = st.UID
		if hall, err := h.Halls.GetByID(ctx, st.HallID); err == nil {
			ev.HallName = hall.Name
			if cinema, err := h.Cinemas.GetByID(ctx, hall.CinemaID); err == nil {
				ev.CinemaName = cinema.Name
				if loc, err := time.LoadLocation(cinema.Timezone); err == nil {
					ev.StartsAt = st.StartsAt.In(loc).Format(wireLayout)
				}
			}
		}
		if ev.StartsAt == "" {
			ev.StartsAt = st.StartsAt.UTC().Format(wireLayout)
		}
		if movie, err := h.Movies.GetByID(ctx, st.MovieID); err == nil {
			ev.MovieTitle = movie.Title
		}
	}
	if uids, err := h.Seats.UIDsByIDs(ctx, seatIDs); err == nil {
		ev.SeatUIDs = uids
	}

	if err := queue_publisher.PublishPaymentCompleted(ctx, ev); err != nil {
		log.Printf("publish payment.completed for %s: %v", pmt.UID, err)
	}
}

// PaymentStatus lets the buyer poll their payment.
func (h *CheckoutHandler) PaymentStatus(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	pmt, err := h.Payments.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	user, err := h.Users.GetByID(ctx, userID(c))
	if err != nil || (user.Email != pmt.UserEmail && userRole(c) != "ADMIN") {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"payment_uid":  pmt.UID,
		"status":       pmt.Status,
		"amount_cents": pmt.AmountCents,
		"currency":     pmt.Currency,
	})
}
