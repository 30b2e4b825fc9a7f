package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	middleware "github.com/Skotchmaster/restaurant_pos/pkg/middleware/auth"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/service"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/transport"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var staffID *uint
	if id, ok := middleware.StaffID(c); ok {
		staffID = &id
	}

	res, err := h.Svc.CreateOrder(ctx, req, staffID)
	if err != nil {
		code := statusFor(err)
		if code >= 500 {
			l.Error("create_order_error", "status", code, "reason", "cannot create order", "error", err)
		} else {
			l.Warn("create_order_error", "status", code, "reason", "rejected", "error", err)
		}
		return echo.NewHTTPError(code, clientMessage(code, err, "cannot create order"))
	}

	l.Info("create_order_success", "order_id", res.OrderID)
	return c.JSON(http.StatusCreated, transport.Envelope{
		Success: true,
		Data: transport.CreateOrderResponse{
			OrderID:      res.OrderID,
			TotalPrice:   res.TotalPrice,
			Subtotal:     res.Subtotal,
			Discount:     res.Discount,
			PointsEarned: res.PointsEarned,
		},
	})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, ok := util.ParseID(c.Param("orderId"))
	if !ok {
		l.Warn("update_status_error", "status", 400, "reason", "order id is not a positive integer", "order_id", c.Param("orderId"))
		return echo.NewHTTPError(http.StatusBadRequest, "order id is not a positive integer")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.SetStatus(ctx, id, req.Status)
	if err != nil {
		code := statusFor(err)
		if code >= 500 {
			l.Error("update_status_error", "status", code, "reason", "cannot update status", "error", err)
		} else {
			l.Warn("update_status_error", "status", code, "reason", "rejected", "error", err)
		}
		return echo.NewHTTPError(code, clientMessage(code, err, "cannot update status"))
	}

	resp := transport.StatusResponse{
		OrderID:     res.OrderID,
		OrderStatus: string(res.Status),
		CompletedAt: res.CompletedAt,
	}
	if res.Inventory != nil {
		resp.InventoryShortages = res.Inventory.Shortages
	}

	l.Info("update_status_success", "order_id", res.OrderID, "order_status", res.Status, "changed", res.Changed)
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: resp})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, ok := util.ParseID(c.Param("orderId"))
	if !ok {
		l.Warn("get_order_error", "status", 400, "reason", "order id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "order id is not a positive integer")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusNotFound {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", code, "reason", "cannot get order", "error", err)
		return echo.NewHTTPError(code, "cannot get order")
	}

	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: order})
}

func (h *OrderHTTP) ActiveOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.active_orders")

	orders, err := h.Svc.ActiveOrders(ctx, util.ListLimit(c.QueryParam("limit")))
	if err != nil {
		l.Error("active_orders_error", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: orders})
}

func (h *OrderHTTP) KitchenOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.kitchen_orders")

	orders, err := h.Svc.KitchenOrders(ctx, util.ListLimit(c.QueryParam("limit")))
	if err != nil {
		l.Error("kitchen_orders_error", "status", 500, "reason", "cannot list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: orders})
}

func (h *OrderHTTP) ReorderItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.reorder_items")

	items, err := h.Svc.ReorderItems(ctx)
	if err != nil {
		l.Error("reorder_items_error", "status", 500, "reason", "cannot list items", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list items")
	}
	return c.JSON(http.StatusOK, transport.Envelope{Success: true, Data: items})
}
