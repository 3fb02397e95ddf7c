package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/showtime"
)

// ShowingHandler schedules screenings.  The start/end window is computed in
// the cinema's own timezone from the movie's runtime; the administrator
// supplies only a date and a wall-clock start time.
type ShowingHandler struct {
	Cinemas       *repository.CinemaRepo
	Halls         *repository.HallRepo
	Seats         *repository.SeatRepo
	Movies        *repository.MovieRepo
	Showtimes     *repository.ShowtimeRepo
	ShowtimeSeats *repository.ShowtimeSeatRepo
	DefaultTZ     string
}

func NewShowingHandler(cn *repository.CinemaRepo, hl *repository.HallRepo, se *repository.SeatRepo,
	mv *repository.MovieRepo, st *repository.ShowtimeRepo, ss *repository.ShowtimeSeatRepo,
	defaultTZ string) *ShowingHandler {
	return &ShowingHandler{Cinemas: cn, Halls: hl, Seats: se, Movies: mv, Showtimes: st, ShowtimeSeats: ss, DefaultTZ: defaultTZ}
}

type showingReq struct {
	MovieUID        string `json:"movie_uid"`
	HallUID         string `json:"hall_uid"`
	Date            string `json:"date"`       // "2006-01-02"
	StartTime       string `json:"start_time"` // "15:04"
	AdultPriceCents uint32 `json:"adult_price_cents"`
	ChildPriceCents uint32 `json:"child_price_cents"`
}

// CreateShowing schedules a screening and provisions one FREE seat state
// per active hall seat.
func (h *ShowingHandler) CreateShowing(c echo.Context) error {
	var req showingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieUID == "" || req.HallUID == "" || req.Date == "" || req.StartTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_uid, hall_uid, date and start_time required"})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	clock, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	movie, err := h.Movies.GetByUID(ctx, req.MovieUID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !movie.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "movie is not schedulable"})
	}
	hall, err := h.Halls.GetByUID(ctx, req.HallUID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !hall.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "hall is not accepting showings"})
	}
	cinema, err := h.Cinemas.GetByID(ctx, hall.CinemaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	loc := time.UTC
	for _, name := range []string{cinema.Timezone, h.DefaultTZ} {
		if name == "" {
			continue
		}
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
			break
		}
	}

	win, err := showtime.ShowingWindow(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), int(movie.RuntimeMin), loc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing window"})
	}

	overlap, err := h.Showtimes.CountOverlapping(ctx, hall.ID, win.Start.UTC(), win.End.UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if overlap > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "hall already booked in that window"})
	}

	st := &model.Showtime{
		UID:             uuid.NewString(),
		MovieID:         movie.ID,
		HallID:          hall.ID,
		StartsAt:        win.Start.UTC(),
		EndsAt:          win.End.UTC(),
		AdultPriceCents: req.AdultPriceCents,
		ChildPriceCents: req.ChildPriceCents,
	}
	if err := h.Showtimes.Create(ctx, st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create showing failed"})
	}

	// One FREE seat state per active hall seat; inactive seats get no row
	// and render as BLOCKED on the grid.
	seats, err := h.Seats.GetByHall(ctx, hall.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "provision seat states failed"})
	}
	seatIDs := make([]uint64, 0, len(seats))
	for _, s := range seats {
		if s.IsActive {
			seatIDs = append(seatIDs, s.ID)
		}
	}
	if len(seatIDs) > 0 {
		if err := h.ShowtimeSeats.CreateBulk(ctx, st.ID, seatIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "provision seat states failed"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"uid":       st.UID,
		"movie_uid": movie.UID,
		"hall_uid":  hall.UID,
		"starts_at": win.StartsAt,
		"ends_at":   win.EndsAt,
		"duration":  showtime.FormatDuration(win.StartsAt, win.EndsAt),
		"seats":     len(seatIDs),
	})
}

// ListHallShowings returns a hall's screenings, newest first.
func (h *ShowingHandler) ListHallShowings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hall, err := h.Halls.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cinema, err := h.Cinemas.GetByID(ctx, hall.CinemaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	loc := time.UTC
	if l, err := time.LoadLocation(cinema.Timezone); err == nil {
		loc = l
	}

	shows, err := h.Showtimes.ListByHall(ctx, hall.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(shows))
	for _, s := range shows {
		out = append(out, echo.Map{
			"uid":       s.UID,
			"starts_at": s.StartsAt.In(loc).Format(wireLayout),
			"ends_at":   s.EndsAt.In(loc).Format(wireLayout),
			"status":    s.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": toHallResp(hall), "showings": out})
}

// UpdateShowingStatus moves a screening to CANCELLED or FINISHED.
func (h *ShowingHandler) UpdateShowingStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case "SCHEDULED", "CANCELLED", "FINISHED":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be SCHEDULED, CANCELLED or FINISHED"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Showtimes.UpdateStatusByUID(ctx, c.Param("uid"), req.Status); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update showing failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteShowing removes a screening with no payments against it.
func (h *ShowingHandler) DeleteShowing(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Showtimes.DeleteByUID(ctx, c.Param("uid")); err != nil {
		switch {
		case errors.Is(err, repository.ErrShowtimeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "showing has payments"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete showing failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
