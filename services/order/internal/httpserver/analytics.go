package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/service"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/transport"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

// dayParam reads a YYYY-MM-DD query value; empty means def.
func (h *AnalyticsHTTP) dayParam(c echo.Context, name string, def time.Time) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return h.Svc.ParseDay(raw)
}

// rangeParams defaults to the last seven days ending today.
func (h *AnalyticsHTTP) rangeParams(c echo.Context) (time.Time, time.Time, error) {
	today := time.Now()
	to, err := h.dayParam(c, "to", today)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := h.dayParam(c, "from", to.AddDate(0, 0, -6))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (h *AnalyticsHTTP) fail(l *slog.Logger, op string, err error) error {
	code := statusFor(err)
	if code >= 500 {
		l.Error(op+"_error", "status", code, "reason", "cannot compute report", "error", err)
		return echo.NewHTTPError(code, "cannot compute report")
	}
	l.Warn(op+"_error", "status", code, "reason", "invalid query", "error", err)
	return echo.NewHTTPError(code, clientMessage(code, err, ""))
}

func (h *AnalyticsHTTP) DailyRevenue(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.daily_revenue")

	from, to, err := h.rangeParams(c)
	if err != nil {
		return h.fail(l, "daily_revenue", err)
	}
	days, err := h.Svc.DailyRevenue(ctx, from, to)
	if err != nil {
		return h.fail(l, "daily_revenue", err)
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: days})
}

func (h *AnalyticsHTTP) HourlyRevenue(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.hourly_revenue")

	day, err := h.dayParam(c, "date", time.Now())
	if err != nil {
		return h.fail(l, "hourly_revenue", err)
	}
	hours, err := h.Svc.HourlyRevenue(ctx, day)
	if err != nil {
		return h.fail(l, "hourly_revenue", err)
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: hours})
}

func (h *AnalyticsHTTP) CompletionTimes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.completion_times")

	from, to, err := h.rangeParams(c)
	if err != nil {
		return h.fail(l, "completion_times", err)
	}
	stats, err := h.Svc.CompletionTimes(ctx, from, to)
	if err != nil {
		return h.fail(l, "completion_times", err)
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: stats})
}
