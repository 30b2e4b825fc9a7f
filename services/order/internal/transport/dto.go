package transport

import (
	"time"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/inventory"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
)

type OrderItem struct {
	MealTypeID uint   `json:"meal_type_id"`
	Entrees    []uint `json:"entrees"`
	Sides      []uint `json:"sides"`
	Drink      *uint  `json:"drink"`
}

type CreateOrderRequest struct {
	OrderItems    []OrderItem `json:"order_items"`
	CustomerName  *string     `json:"customer_name"`
	CustomerID    *uint       `json:"customerId"`
	PointsApplied int64       `json:"pointsApplied"`
}

type CreateOrderResponse struct {
	OrderID      uint        `json:"orderId"`
	TotalPrice   money.Cents `json:"totalPrice"`
	Subtotal     money.Cents `json:"subtotal"`
	Discount     money.Cents `json:"discount"`
	PointsEarned int64       `json:"pointsEarned"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type StatusResponse struct {
	OrderID            uint                 `json:"order_id"`
	OrderStatus        string               `json:"order_status"`
	CompletedAt        *time.Time           `json:"completed_at,omitempty"`
	InventoryShortages []inventory.Shortage `json:"inventory_shortages,omitempty"`
}

// OrderDetail is a stored order plus what its meals cost at today's catalog.
// CatalogPrice differs from price only when the catalog changed since.
type OrderDetail struct {
	*models.Order
	CatalogSubtotal money.Cents `json:"catalog_subtotal"`
	CatalogPrice    money.Cents `json:"catalog_price"`
}

type KitchenItem struct {
	MenuItemID uint   `json:"menu_item_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

type KitchenMeal struct {
	MealID   uint          `json:"meal_id"`
	MealType string        `json:"meal_type"`
	Items    []KitchenItem `json:"items"`
}

type KitchenOrder struct {
	OrderID      uint          `json:"order_id"`
	OrderStatus  string        `json:"order_status"`
	CustomerName *string       `json:"customer_name,omitempty"`
	Datetime     time.Time     `json:"datetime"`
	Meals        []KitchenMeal `json:"meals"`
}

type DailyRevenue struct {
	Date    string      `json:"date"`
	Orders  int         `json:"orders"`
	Revenue money.Cents `json:"revenue"`
	Average money.Cents `json:"average"`
	Min     money.Cents `json:"min"`
	Max     money.Cents `json:"max"`
}

type HourlyRevenue struct {
	Hour    int         `json:"hour"`
	Orders  int         `json:"orders"`
	Revenue money.Cents `json:"revenue"`
}

type CompletionStats struct {
	Orders     int     `json:"orders"`
	AvgMinutes float64 `json:"avg_minutes"`
	MinMinutes float64 `json:"min_minutes"`
	MaxMinutes float64 `json:"max_minutes"`
	P50Minutes float64 `json:"p50_minutes"`
	P90Minutes float64 `json:"p90_minutes"`
}

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
