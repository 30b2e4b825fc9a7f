package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/gateway/internal/middleware"
)

var errMissingHost = errors.New("upstream url needs scheme and host")

type Deps struct {
	OrderURL string
	AuthURL  string
	Logger   *slog.Logger
}

// Register mounts the POS API under /api/v1. Staff tokens are checked by
// the order service itself, so the gateway only routes.
func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, m := range middleware.Common(d.Logger) {
		e.Use(m)
	}

	orderProxy, err := newProxy(d.OrderURL, "/api/v1")
	if err != nil {
		return err
	}

	api := e.Group("/api/v1")
	api.Any("/orders", orderProxy)
	api.Any("/orders/*", orderProxy)
	api.GET("/inventory/*", orderProxy)
	api.GET("/analytics/*", orderProxy)

	if d.AuthURL != "" {
		authProxy, err := newProxy(d.AuthURL, "/api/v1/auth")
		if err != nil {
			return err
		}
		api.Any("/auth/*", authProxy)
	}
	return nil
}
