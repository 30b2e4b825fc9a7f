package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

func newContext(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func sign(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := tokens.SignStaffToken(id, role, time.Now().Add(time.Hour), secret)
	require.NoError(t, err)
	return tok
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	return he.Code
}

func TestOptionalStaff(t *testing.T) {
	m := NewStaffMiddleware(secret)

	c, rec := newContext(t, "")
	require.NoError(t, m.OptionalStaff(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := StaffID(c)
	assert.False(t, ok)

	c, _ = newContext(t, sign(t, 5, tokens.RoleCashier))
	require.NoError(t, m.OptionalStaff(okHandler)(c))
	id, ok := StaffID(c)
	assert.True(t, ok)
	assert.EqualValues(t, 5, id)

	c, _ = newContext(t, "garbage")
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, m.OptionalStaff(okHandler)(c)))
}

func TestRequireRole(t *testing.T) {
	m := NewStaffMiddleware(secret)
	managerOnly := m.RequireRole(tokens.RoleManager)(okHandler)

	c, _ := newContext(t, "")
	assert.Equal(t, http.StatusUnauthorized, httpCode(t, managerOnly(c)))

	c, _ = newContext(t, sign(t, 1, tokens.RoleCashier))
	assert.Equal(t, http.StatusForbidden, httpCode(t, managerOnly(c)))

	c, rec := newContext(t, sign(t, 2, tokens.RoleManager))
	require.NoError(t, managerOnly(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(t, sign(t, 3, tokens.RoleKitchen))
	require.NoError(t, m.RequireStaff(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenFromCookie(t *testing.T) {
	m := NewStaffMiddleware(secret)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: sign(t, 9, tokens.RoleCashier)})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	require.NoError(t, m.RequireStaff(okHandler)(c))
	id, _ := StaffID(c)
	assert.EqualValues(t, 9, id)
}
