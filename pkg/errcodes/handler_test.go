package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandle_CustomError(t *testing.T) {
	t.Parallel()

	c, rr := newTestContext()
	NewHandler().Handle(NotFound("Book"), c)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"Book not found.","status_code":404}}`, rr.Body.String())
}

func TestHandle_EchoError(t *testing.T) {
	t.Parallel()

	c, rr := newTestContext()
	NewHandler().Handle(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"method_not_allowed","message":"Method Not Allowed","status_code":405}}`, rr.Body.String())
}

func TestHandle_GenericError(t *testing.T) {
	t.Parallel()

	c, rr := newTestContext()
	NewHandler().Handle(errors.New("sqlite exploded"), c)

	// Internal failures never leak their message to the caller.
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_server_error","message":"Internal Server Error","status_code":500}}`, rr.Body.String())
}
