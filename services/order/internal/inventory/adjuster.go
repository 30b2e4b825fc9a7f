package inventory

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
)

const DefaultReorderThreshold = 10

type Store interface {
	ConsumedItems(ctx context.Context, orderID uint) ([]models.ItemQuantity, error)
	DecrementStock(ctx context.Context, menuItemID uint, qty int64) (bool, error)
	MenuItemStock(ctx context.Context, id uint) (int64, bool, error)
	FlagReorder(ctx context.Context, ids []uint, threshold int64) ([]models.MenuItem, error)
}

// Shortage is a consumed item whose stock could not cover the order.
// Untracked items are not in inventory at all.
type Shortage struct {
	MenuItemID uint  `json:"menu_item_id"`
	Requested  int64 `json:"requested"`
	Stock      int64 `json:"stock"`
	Untracked  bool  `json:"untracked,omitempty"`
}

type Result struct {
	Consumed  []models.ItemQuantity
	Shortages []Shortage
	Reordered []models.MenuItem
}

type Adjuster struct {
	store     Store
	threshold int64
}

func NewAdjuster(s Store, threshold int64) *Adjuster {
	if threshold <= 0 {
		threshold = DefaultReorderThreshold
	}
	return &Adjuster{store: s, threshold: threshold}
}

// AdjustForCompletedOrder decrements stock for everything the order
// consumed. An item whose stock does not cover the quantity is left
// untouched and reported as a shortage; the order still completes.
func (a *Adjuster) AdjustForCompletedOrder(ctx context.Context, orderID uint) (*Result, error) {
	l := logging.FromContext(ctx)

	consumed, err := a.store.ConsumedItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	res := &Result{Consumed: consumed}
	touched := make([]uint, 0, len(consumed))
	for _, it := range consumed {
		applied, err := a.store.DecrementStock(ctx, it.MenuItemID, it.Quantity)
		if err != nil {
			return nil, err
		}
		if applied {
			touched = append(touched, it.MenuItemID)
			continue
		}

		stock, found, err := a.store.MenuItemStock(ctx, it.MenuItemID)
		if err != nil {
			return nil, err
		}
		s := Shortage{MenuItemID: it.MenuItemID, Requested: it.Quantity, Stock: stock, Untracked: !found}
		res.Shortages = append(res.Shortages, s)
		if found {
			touched = append(touched, it.MenuItemID)
			l.Warn("inventory_shortage", "order_id", orderID, "menu_item_id", s.MenuItemID, "requested", s.Requested, "stock", s.Stock)
		} else {
			l.Info("inventory_untracked_item", "order_id", orderID, "menu_item_id", s.MenuItemID)
		}
	}

	res.Reordered, err = a.store.FlagReorder(ctx, touched, a.threshold)
	if err != nil {
		return nil, err
	}
	return res, nil
}
