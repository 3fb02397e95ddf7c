package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/repository"
)

// BrowseHandler serves the unauthenticated catalog: cities, cinemas and
// movies.  These endpoints sit behind the response cache.
type BrowseHandler struct {
	Cities  *repository.CityRepo
	Cinemas *repository.CinemaRepo
	Movies  *repository.MovieRepo
}

func NewBrowseHandler(ci *repository.CityRepo, cn *repository.CinemaRepo, mv *repository.MovieRepo) *BrowseHandler {
	return &BrowseHandler{Cities: ci, Cinemas: cn, Movies: mv}
}

type cityResp struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type cinemaResp struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type movieResp struct {
	UID        string `json:"uid"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
	RuntimeMin uint32 `json:"runtime_min"`
}

func toMovieResp(m *model.Movie) movieResp {
	return movieResp{UID: m.UID, Title: m.Title, PosterURL: m.PosterURL, RuntimeMin: m.RuntimeMin}
}

// ListCities returns every city, alphabetically.
func (h *BrowseHandler) ListCities(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cities, err := h.Cities.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]cityResp, 0, len(cities))
	for _, ct := range cities {
		out = append(out, cityResp{UID: ct.UID, Name: ct.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"cities": out})
}

// ListCinemasByCity returns the cinemas of one city.
func (h *BrowseHandler) ListCinemasByCity(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cityUID := c.Param("uid")
	if _, err := h.Cities.GetByUID(ctx, cityUID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cinemas, err := h.Cinemas.ListByCityUID(ctx, cityUID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]cinemaResp, 0, len(cinemas))
	for _, cn := range cinemas {
		if !cn.IsActive {
			continue
		}
		out = append(out, cinemaResp{UID: cn.UID, Name: cn.Name, Timezone: cn.Timezone})
	}
	return c.JSON(http.StatusOK, echo.Map{"cinemas": out})
}

// ListMovies returns the active movie catalog.
func (h *BrowseHandler) ListMovies(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": out})
}
