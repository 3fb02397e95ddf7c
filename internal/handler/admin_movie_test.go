package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

// runtime_min feeds duration arithmetic in the showing scheduler, so the
// catalog rejects values beyond a day before they reach storage.
func TestCreateMovieRejectsAbsurdRuntime(t *testing.T) {
	h := &MovieHandler{}

	rec := postJSON(t, h.CreateMovie, `{"title":"Epic","runtime_min":100000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.CreateMovie, `{"title":"Epic","runtime_min":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMovieRejectsAbsurdRuntime(t *testing.T) {
	h := &MovieHandler{}

	rec := postJSON(t, h.UpdateMovie, `{"runtime_min":100000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
