package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/model"
	"github.com/cinetick/cinetick/internal/repository"
)

// maxRuntimeMin caps runtime_min at 24 hours. The showing scheduler turns
// the runtime into duration arithmetic, so an absurd value would produce
// showings ending days later.
const maxRuntimeMin = 1440

// MovieHandler covers the admin movie catalog.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(mv *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: mv}
}

type movieReq struct {
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
	RuntimeMin uint32 `json:"runtime_min"`
	IsActive   *bool  `json:"is_active"`
}

// ListAllMovies returns every movie including inactive ones, for the admin
// catalog screen.
func (h *MovieHandler) ListAllMovies(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx, false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(movies))
	for _, m := range movies {
		out = append(out, echo.Map{
			"uid":         m.UID,
			"title":       m.Title,
			"poster_url":  m.PosterURL,
			"runtime_min": m.RuntimeMin,
			"is_active":   m.IsActive,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": out})
}

// CreateMovie adds a title to the catalog.  Runtime is required because the
// showing scheduler derives end times from it.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.RuntimeMin == 0 || req.RuntimeMin > maxRuntimeMin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "runtime_min must be between 1 and 1440"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m := &model.Movie{
		UID:        uuid.NewString(),
		Title:      req.Title,
		PosterURL:  strings.TrimSpace(req.PosterURL),
		RuntimeMin: req.RuntimeMin,
	}
	if err := h.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	return c.JSON(http.StatusCreated, toMovieResp(m))
}

// UpdateMovie edits a movie's fields.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RuntimeMin > maxRuntimeMin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "runtime_min must be between 1 and 1440"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cur, err := h.Movies.GetByUID(ctx, c.Param("uid"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	title := cur.Title
	if t := strings.TrimSpace(req.Title); t != "" {
		title = t
	}
	poster := cur.PosterURL
	if p := strings.TrimSpace(req.PosterURL); p != "" {
		poster = p
	}
	runtime := cur.RuntimeMin
	if req.RuntimeMin != 0 {
		runtime = req.RuntimeMin
	}
	active := cur.IsActive
	if req.IsActive != nil {
		active = *req.IsActive
	}

	if err := h.Movies.UpdateByUID(ctx, cur.UID, title, poster, runtime, active); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// DeleteMovie removes a movie with no showings.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Movies.DeleteByUID(ctx, c.Param("uid")); err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie still has showings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
