package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRegister_ProxiesToOrderService(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotRID, gotFwdHost string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotFwdHost = r.Header.Get("X-Forwarded-Host")
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get(echo.HeaderXRequestID)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer upstream.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{OrderURL: upstream.URL, Logger: quiet()}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotRID)
	assert.Equal(t, "example.com", gotFwdHost)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/revenue/daily?from=2026-03-01", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "/analytics/revenue/daily", gotPath)
	assert.Equal(t, "from=2026-03-01", gotQuery)
}

func TestRegister_AuthRouteOptional(t *testing.T) {
	e := echo.New()
	require.NoError(t, Register(e, &Deps{OrderURL: "http://orders.local", Logger: quiet()}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_BadUpstream(t *testing.T) {
	e := echo.New()
	assert.Error(t, Register(e, &Deps{OrderURL: "orders", Logger: quiet()}))
}

func TestProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{OrderURL: url, Logger: quiet()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
