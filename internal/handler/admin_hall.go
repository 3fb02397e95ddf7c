package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/seatmap"
)

// maxGridDim caps hall dimensions; a fat-fingered 10000x10000 hall would
// otherwise insert a hundred million seat rows.
const maxGridDim = 200

// HallHandler covers the admin hall lifecycle: creating a hall provisions
// one seat record per grid cell, resizing regenerates them, and individual
// seats can be toggled out of service.
type HallHandler struct {
	Cinemas   *repository.CinemaRepo
	Halls     *repository.HallRepo
	Seats     *repository.SeatRepo
	Showtimes *repository.ShowtimeRepo
}

func NewHallHandler(cn *repository.CinemaRepo, hl *repository.HallRepo, st *repository.SeatRepo,
	sh *repository.ShowtimeRepo) *HallHandler {
	return &HallHandler{Cinemas: cn, Halls: hl, Seats: st, Showtimes: sh}
}

type hallReq struct {
	CinemaUID string `json:"cinema_uid"`
	Name      string `json:"name"`
	SeatRows  uint32 `json:"seat_rows"`
	SeatCols  uint32 `json:"seat_cols"`
	IsActive  *bool  `json:"is_active"`
}

type hallResp struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	SeatRows uint32 `json:"seat_rows"`
	SeatCols uint32 `json:"seat_cols"`
	IsActive bool   `json:"is_active"`
}

func toHallResp(h *model.Hall) hallResp {
	return hallResp{UID: h.UID, Name: h.Name, SeatRows: h.SeatRows, SeatCols: h.SeatCols, IsActive: h.IsActive}
}

// generateSeats provisions one active seat per cell of the hall's grid.
func (h *HallHandler) generateSeats(c echo.Context, hall *model.Hall) error {
	seats := make([]model.Seat, 0, int(hall.SeatRows)*int(hall.SeatCols))
	for r := uint32(1); r <= hall.SeatRows; r++ {
		for col := uint32(1); col <= hall.SeatCols; col++ {
			seats = append(seats, model.Seat{
				UID:    uuid.NewString(),
				HallID: hall.ID,
				RowNum: r,
				ColNum: col,
			})
		}
	}
	if len(seats) == 0 {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	return h.Seats.CreateBulk(ctx, seats)
}

// ListHalls returns the halls of one cinema.
func (h *HallHandler) ListHalls(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cinema, err := h.Cinemas.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	halls, err := h.Halls.ListByCinema(ctx, cinema.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hallResp, 0, len(halls))
	for _, hall := range halls {
		out = append(out, toHallResp(hall))
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": out})
}

// CreateHall adds a hall and provisions its seats.
func (h *HallHandler) CreateHall(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.CinemaUID == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema_uid and name required"})
	}
	if req.SeatRows > maxGridDim || req.SeatCols > maxGridDim {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "grid dimensions too large"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cinema, err := h.Cinemas.GetByUID(ctx, req.CinemaUID)
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hall := &model.Hall{
		UID:      uuid.NewString(),
		CinemaID: cinema.ID,
		Name:     req.Name,
		SeatRows: req.SeatRows,
		SeatCols: req.SeatCols,
	}
	if err := h.Halls.Create(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall already exists in this cinema"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	if err := h.generateSeats(c, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "provision seats failed"})
	}
	return c.JSON(http.StatusCreated, toHallResp(hall))
}

// UpdateHall renames a hall or toggles it.  Resizing the grid regenerates
// every seat and is refused once the hall has showings, because existing
// per-screening seat state would dangle.
func (h *HallHandler) UpdateHall(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeatRows > maxGridDim || req.SeatCols > maxGridDim {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "grid dimensions too large"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hall, err := h.Halls.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	name := hall.Name
	if n := strings.TrimSpace(req.Name); n != "" {
		name = n
	}
	rows, cols := hall.SeatRows, hall.SeatCols
	resize := false
	if req.SeatRows != 0 || req.SeatCols != 0 {
		if req.SeatRows != hall.SeatRows || req.SeatCols != hall.SeatCols {
			resize = true
			rows, cols = req.SeatRows, req.SeatCols
		}
	}
	active := hall.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}

	if resize {
		shows, err := h.Showtimes.ListByHall(ctx, hall.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if len(shows) > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall has showings; grid cannot be resized"})
		}
	}

	if err := h.Halls.UpdateByUID(ctx, hall.UID, name, rows, cols, active); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hall failed"})
	}

	if resize {
		if err := h.Seats.DeleteByHall(ctx, hall.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "regenerate seats failed"})
		}
		hall.SeatRows, hall.SeatCols = rows, cols
		if err := h.generateSeats(c, hall); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "regenerate seats failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true, "seats_regenerated": resize})
}

// DeleteHall removes a hall with no showings.
func (h *HallHandler) DeleteHall(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hall, err := h.Halls.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := h.Seats.DeleteByHall(ctx, hall.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
	}
	if err := h.Halls.DeleteByUID(ctx, hall.UID); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall still has showings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// HallSeatGrid returns the provisioning view of a hall's layout: the full
// rows×cols grid with each cell's active flag, no booking state.
func (h *HallHandler) HallSeatGrid(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	hall, err := h.Halls.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rows, err := h.Seats.GetByHall(ctx, hall.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	seats := make([]seatmap.Seat, 0, len(rows))
	for _, s := range rows {
		seats = append(seats, seatmap.Seat{
			UID:    s.UID,
			Row:    s.RowNum,
			Col:    s.ColNum,
			Status: seatmap.StatusFree,
			Active: s.IsActive,
		})
	}

	grid, err := seatmap.Build(hall.SeatRows, hall.SeatCols, seats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat layout invalid"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hall": toHallResp(hall), "grid": grid})
}

// ToggleSeat flips a seat's provisioning flag.
func (h *HallHandler) ToggleSeat(c echo.Context) error {
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Seats.SetActiveByUID(ctx, c.Param("uid"), *req.Active); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}
