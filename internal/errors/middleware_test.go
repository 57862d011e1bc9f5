package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wafflestudio18-5/team4-server/internal/domain"
)

func runMiddleware(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(Middleware())
	e.GET("/test", handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_NoError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	assert.Equal(t, 200, rec.Code)
}

func TestMiddleware_StructuredError(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return ForbiddenError("cannot rate your own post").WithField("answer_id", int64(7))
	})

	assert.Equal(t, 403, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cannot rate your own post", resp.Error)
	assert.Equal(t, TypeForbidden, resp.Type)
	assert.EqualValues(t, 7, resp.Context["answer_id"])
}

func TestMiddleware_DomainSentinel(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return domain.ErrAlreadyAccepted
	})

	assert.Equal(t, 400, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeValidation, resp.Type)
}

func TestMiddleware_UnknownErrorBecomes500(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return assert.AnError
	})

	assert.Equal(t, 500, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec := runMiddleware(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
