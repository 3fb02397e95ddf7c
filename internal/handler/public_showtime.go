package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/seatmap"
	"github.com/cinetick/cinetick/internal/showtime"
)

// wireLayout is the timestamp format exposed over the API: local wall-clock
// time with the zone's UTC offset baked in.
const wireLayout = "2006-01-02 15:04:05-07:00"

// ShowtimeHandler serves the public screening views: the per-cinema grouped
// listing, the showtime detail and the seat grid.
type ShowtimeHandler struct {
	Cinemas       *repository.CinemaRepo
	Halls         *repository.HallRepo
	Movies        *repository.MovieRepo
	Showtimes     *repository.ShowtimeRepo
	ShowtimeSeats *repository.ShowtimeSeatRepo
	DefaultTZ     string
}

func NewShowtimeHandler(cn *repository.CinemaRepo, hl *repository.HallRepo, mv *repository.MovieRepo,
	st *repository.ShowtimeRepo, ss *repository.ShowtimeSeatRepo, defaultTZ string) *ShowtimeHandler {
	return &ShowtimeHandler{Cinemas: cn, Halls: hl, Movies: mv, Showtimes: st, ShowtimeSeats: ss, DefaultTZ: defaultTZ}
}

// cinemaLocation resolves the IANA zone a cinema operates in, falling back
// to the configured default and finally UTC.
func (h *ShowtimeHandler) cinemaLocation(tz string) *time.Location {
	for _, name := range []string{tz, h.DefaultTZ} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}

// CinemaShowtimes returns one cinema's screenings for a calendar day,
// grouped by movie.  The day boundaries are computed in the cinema's own
// timezone, so "today" means the venue's today, not the server's.
func (h *ShowtimeHandler) CinemaShowtimes(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cinema, err := h.Cinemas.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	loc := h.cinemaLocation(cinema.Timezone)

	day := time.Now().In(loc)
	if ds := c.QueryParam("date"); ds != "" {
		parsed, err := time.ParseInLocation("2006-01-02", ds, loc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = parsed
	}
	// Local midnight to the next one; DST days are shorter or longer than
	// 24h, which AddDate handles and a fixed duration would not.
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	records, err := h.Showtimes.ListForCinemaBetween(ctx, cinema.ID, from.UTC(), to.UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"cinema": cinemaResp{UID: cinema.UID, Name: cinema.Name, Timezone: cinema.Timezone},
		"date":   from.Format("2006-01-02"),
		"movies": showtime.GroupByMovie(records, loc),
	})
}

// ShowtimeDetail returns one screening with its movie, hall and a rendered
// duration.  A malformed stored timestamp degrades the duration to a
// placeholder instead of failing the whole response.
func (h *ShowtimeHandler) ShowtimeDetail(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.Showtimes.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hall, err := h.Halls.GetByID(ctx, st.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cinema, err := h.Cinemas.GetByID(ctx, hall.CinemaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	movie, err := h.Movies.GetByID(ctx, st.MovieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	loc := h.cinemaLocation(cinema.Timezone)
	startsAt := st.StartsAt.In(loc).Format(wireLayout)
	endsAt := st.EndsAt.In(loc).Format(wireLayout)

	return c.JSON(http.StatusOK, echo.Map{
		"uid":               st.UID,
		"movie":             toMovieResp(movie),
		"cinema":            cinemaResp{UID: cinema.UID, Name: cinema.Name, Timezone: cinema.Timezone},
		"hall":              hall.Name,
		"starts_at":         startsAt,
		"ends_at":           endsAt,
		"duration":          showtime.FormatDuration(startsAt, endsAt),
		"adult_price_cents": st.AdultPriceCents,
		"child_price_cents": st.ChildPriceCents,
		"status":            st.Status,
	})
}

// ShowtimeSeatGrid returns the complete rows×cols grid for a screening.
// Positions without a seat record come back as empty cells; seats with no
// per-screening status row render as BLOCKED.
func (h *ShowtimeHandler) ShowtimeSeatGrid(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.Showtimes.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	hall, err := h.Halls.GetByID(ctx, st.HallID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	seats, err := h.ShowtimeSeats.ListGridSeats(ctx, st.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	grid, err := seatmap.Build(hall.SeatRows, hall.SeatCols, seats)
	if err != nil {
		// Out-of-range coordinates mean the stored layout is corrupt.
		log.Printf("seat grid for showtime %s: %v", st.UID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat layout invalid"})
	}
	if len(grid.Conflicts) > 0 {
		log.Printf("seat grid for showtime %s: %d duplicate seat positions", st.UID, len(grid.Conflicts))
	}

	return c.JSON(http.StatusOK, echo.Map{"showtime_uid": st.UID, "grid": grid})
}
