package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/repository"
)

// CatalogHandler covers the admin CRUD for cities and cinemas.
type CatalogHandler struct {
	Cities  *repository.CityRepo
	Cinemas *repository.CinemaRepo
}

func NewCatalogHandler(ci *repository.CityRepo, cn *repository.CinemaRepo) *CatalogHandler {
	return &CatalogHandler{Cities: ci, Cinemas: cn}
}

type cityReq struct {
	Name string `json:"name"`
}

type cinemaReq struct {
	CityUID  string `json:"city_uid"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive *bool  `json:"is_active"`
}

// CreateCity adds a new city.
func (h *CatalogHandler) CreateCity(c echo.Context) error {
	var req cityReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	city := &model.City{UID: uuid.NewString(), Name: strings.TrimSpace(req.Name)}
	if err := h.Cities.Create(ctx, city); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "city already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create city failed"})
	}
	return c.JSON(http.StatusCreated, cityResp{UID: city.UID, Name: city.Name})
}

// UpdateCity renames a city.
func (h *CatalogHandler) UpdateCity(c echo.Context) error {
	var req cityReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Cities.UpdateByUID(ctx, c.Param("uid"), strings.TrimSpace(req.Name)); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update city failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteCity removes a city without cinemas; one with cinemas is refused.
func (h *CatalogHandler) DeleteCity(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Cities.DeleteByUID(ctx, c.Param("uid")); err != nil {
		switch {
		case errors.Is(err, repository.ErrCityNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "city still has cinemas"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete city failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// CreateCinema adds a cinema to a city.  The timezone must be a resolvable
// IANA zone name since every showing window is computed in it.
func (h *CatalogHandler) CreateCinema(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.CityUID == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city_uid and name required"})
	}
	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown timezone"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	city, err := h.Cities.GetByUID(ctx, req.CityUID)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cinema := &model.Cinema{UID: uuid.NewString(), CityID: city.ID, Name: req.Name, Timezone: tz}
	if err := h.Cinemas.Create(ctx, cinema); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cinema already exists in this city"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create cinema failed"})
	}
	return c.JSON(http.StatusCreated, cinemaResp{UID: cinema.UID, Name: cinema.Name, Timezone: cinema.Timezone})
}

// UpdateCinema changes a cinema's name, timezone or visibility.
func (h *CatalogHandler) UpdateCinema(c echo.Context) error {
	var req cinemaReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cur, err := h.Cinemas.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrCinemaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	name := cur.Name
	if n := strings.TrimSpace(req.Name); n != "" {
		name = n
	}
	tz := cur.Timezone
	if t := strings.TrimSpace(req.Timezone); t != "" {
		if _, err := time.LoadLocation(t); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown timezone"})
		}
		tz = t
	}
	active := cur.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}

	if err := h.Cinemas.UpdateByUID(ctx, cur.UID, name, tz, active); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update cinema failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteCinema removes a cinema without halls; one with halls is refused.
func (h *CatalogHandler) DeleteCinema(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Cinemas.DeleteByUID(ctx, c.Param("uid")); err != nil {
		switch {
		case errors.Is(err, repository.ErrCinemaNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cinema not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "cinema still has halls"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete cinema failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
