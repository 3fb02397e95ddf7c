package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/config"
)

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Multi", "a")
	hdr.Add("X-Multi", "b")
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr["X-Multi"])
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, []byte("short"), make([]byte, 8)} {
		_, _, _, ok := decodePayload(bs)
		if len(bs) == 8 {
			// Zero-length header and body is structurally valid.
			assert.True(t, ok)
			continue
		}
		assert.False(t, ok)
	}
}

func TestCacheKeyFromStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/movies")
		return c
	}

	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	withQuery := cacheKeyFrom(cfg, newCtx("/v1/movies?page=2"))
	withoutQuery := cacheKeyFrom(cfg, newCtx("/v1/movies"))
	assert.NotEqual(t, withQuery, withoutQuery)
	// Same request always maps to the same key.
	assert.Equal(t, withQuery, cacheKeyFrom(cfg, newCtx("/v1/movies?page=2")))

	cfg.KeyStrategy = "route"
	assert.Equal(t,
		cacheKeyFrom(cfg, newCtx("/v1/movies?page=2")),
		cacheKeyFrom(cfg, newCtx("/v1/movies")),
		"route strategy ignores the query string")
}

// A response larger than the buffer cap holds only a truncated prefix, so
// it must be flagged as overflowed and kept out of the cache. The full body
// still reaches the client untouched.
func TestRecordingWriterOverflow(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &recordingWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	_, err := rw.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)

	assert.True(t, rw.overflowed())
	assert.Equal(t, "0123456789", rw.buf.String())
	assert.Equal(t, "0123456789abcdef", rec.Body.String())

	// Filling the buffer exactly is fine until another byte arrives.
	rec2 := httptest.NewRecorder()
	rw2 := &recordingWriter{ResponseWriter: rec2, status: http.StatusOK, limit: 10}
	_, _ = rw2.Write([]byte("0123456789"))
	assert.False(t, rw2.overflowed())
	_, _ = rw2.Write([]byte("x"))
	assert.True(t, rw2.overflowed())
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
