package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/inventory"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
)

const (
	TopicOrders    = "order_events"
	TopicInventory = "inventory_events"
)

// publish runs after commit; the order already exists, so a broker
// failure is logged and swallowed.
func (s *OrderService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	event["event_id"] = uuid.NewString()
	event["occurred_at"] = s.now()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}

func (s *OrderService) publishCreated(ctx context.Context, res *CreateOrderResult) {
	s.publish(ctx, TopicOrders, fmt.Sprint(res.OrderID), map[string]any{
		"type":           "order_created",
		"order_id":       res.OrderID,
		"total_price":    res.TotalPrice,
		"customer_id":    res.CustomerID,
		"points_applied": res.PointsApplied,
		"points_earned":  res.PointsEarned,
	})
}

func (s *OrderService) publishStatus(ctx context.Context, res *StatusResult) {
	s.publish(ctx, TopicOrders, fmt.Sprint(res.OrderID), map[string]any{
		"type":         "order_status_changed",
		"order_id":     res.OrderID,
		"order_status": res.Status,
		"completed_at": res.CompletedAt,
	})
	if res.Inventory == nil {
		return
	}
	for _, sh := range res.Inventory.Shortages {
		s.publishShortage(ctx, res.OrderID, sh)
	}
	for _, it := range res.Inventory.Reordered {
		s.publishReorder(ctx, it)
	}
}

func (s *OrderService) publishShortage(ctx context.Context, orderID uint, sh inventory.Shortage) {
	s.publish(ctx, TopicInventory, fmt.Sprint(sh.MenuItemID), map[string]any{
		"type":         "stock_shortage",
		"order_id":     orderID,
		"menu_item_id": sh.MenuItemID,
		"requested":    sh.Requested,
		"stock":        sh.Stock,
		"untracked":    sh.Untracked,
	})
}

func (s *OrderService) publishReorder(ctx context.Context, it models.MenuItem) {
	s.publish(ctx, TopicInventory, fmt.Sprint(it.ID), map[string]any{
		"type":         "reorder_required",
		"menu_item_id": it.ID,
		"name":         it.Name,
		"stock":        it.Stock,
	})
}
