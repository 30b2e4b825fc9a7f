package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/restaurant_pos/pkg/db"
	middleware "github.com/Skotchmaster/restaurant_pos/pkg/middleware/auth"
	"github.com/Skotchmaster/restaurant_pos/pkg/tokens"
)

type Deps struct {
	OrderHandler     *OrderHTTP
	AnalyticsHandler *AnalyticsHTTP
	JWTSecret        []byte
	DB               *gorm.DB
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	staff := middleware.NewStaffMiddleware(d.JWTSecret)

	orders := e.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder, staff.OptionalStaff)
	orders.GET("/active", d.OrderHandler.ActiveOrders, staff.RequireStaff)
	orders.GET("/kitchen", d.OrderHandler.KitchenOrders, staff.RequireStaff)
	orders.GET("/:orderId", d.OrderHandler.GetOrder, staff.RequireStaff)
	orders.PATCH("/:orderId/status", d.OrderHandler.UpdateStatus, staff.RequireStaff)

	manager := staff.RequireRole(tokens.RoleManager)
	e.GET("/inventory/reorder", d.OrderHandler.ReorderItems, manager)

	analytics := e.Group("/analytics", manager)
	analytics.GET("/revenue/daily", d.AnalyticsHandler.DailyRevenue)
	analytics.GET("/revenue/hourly", d.AnalyticsHandler.HourlyRevenue)
	analytics.GET("/completion-times", d.AnalyticsHandler.CompletionTimes)
}
