package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/restaurant_pos/pkg/events"
	"github.com/Skotchmaster/restaurant_pos/pkg/logging"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/inventory"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/pricing"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/rewards"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/transport"
)

type Options struct {
	// AwardOn decides whether points are earned when the order is created
	// or when it completes. Defaults to creation.
	AwardOn rewards.AwardPolicy
	// StrictCatalog rejects unknown meal types and menu items instead of
	// pricing them at zero.
	StrictCatalog    bool
	ReorderThreshold int64
}

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Opts   Options
	Now    func() time.Time
}

type CreateOrderResult struct {
	OrderID       uint
	Subtotal      money.Cents
	Discount      money.Cents
	TotalPrice    money.Cents
	CustomerID    *uint
	PointsApplied int64
	PointsEarned  int64
}

type StatusResult struct {
	OrderID      uint
	Status       models.OrderStatus
	CompletedAt  *time.Time
	Changed      bool
	Inventory    *inventory.Result
	PointsEarned int64
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) awardOn() rewards.AwardPolicy {
	if s.Opts.AwardOn == "" {
		return rewards.AwardOnCreation
	}
	return s.Opts.AwardOn
}

func validateCreate(req transport.CreateOrderRequest) ([]pricing.OrderItem, error) {
	if len(req.OrderItems) == 0 {
		return nil, fmt.Errorf("%w: order_items required", ErrValidation)
	}
	if req.PointsApplied < 0 {
		return nil, fmt.Errorf("%w: pointsApplied must be >= 0", ErrValidation)
	}
	if req.PointsApplied > 0 && req.CustomerID == nil {
		return nil, fmt.Errorf("%w: pointsApplied requires customerId", ErrValidation)
	}

	items := make([]pricing.OrderItem, 0, len(req.OrderItems))
	for i, it := range req.OrderItems {
		if it.MealTypeID == 0 {
			return nil, fmt.Errorf("%w: order_items[%d].meal_type_id required", ErrValidation, i)
		}
		items = append(items, pricing.OrderItem{
			MealTypeID: it.MealTypeID,
			Entrees:    it.Entrees,
			Sides:      it.Sides,
			Drink:      it.Drink,
		})
	}
	return items, nil
}

// CreateOrder prices and persists an order with its meals and meal details,
// redeems and awards rewards points, all in one transaction. On error
// nothing it wrote is kept.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest, staffID *uint) (*CreateOrderResult, error) {
	items, err := validateCreate(req)
	if err != nil {
		return nil, err
	}
	ctx, l := logging.With(ctx, "operation", "create_order")

	var res *CreateOrderResult
	err = s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		ledger := rewards.NewLedger(tx)
		if req.CustomerID != nil {
			if err := ledger.ValidateRedemption(ctx, *req.CustomerID, req.PointsApplied); err != nil {
				return err
			}
		}

		snap, err := tx.CatalogSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if missing := snap.Missing(items); len(missing) > 0 {
			if s.Opts.StrictCatalog {
				return fmt.Errorf("%w: unknown catalog references %v", ErrValidation, missing)
			}
			l.Warn("catalog_reference_missing", "missing", missing)
		}

		order := &models.Order{
			Status:       models.StatusPending,
			StaffID:      staffID,
			CustomerID:   req.CustomerID,
			CustomerName: req.CustomerName,
			Datetime:     s.now(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		var subtotal money.Cents
		for _, it := range items {
			meal := &models.Meal{OrderID: order.ID, MealTypeID: it.MealTypeID}
			if err := tx.CreateMeal(ctx, meal); err != nil {
				return fmt.Errorf("insert meal: %w", err)
			}
			for _, sel := range it.Selections() {
				detail := &models.MealDetail{MealID: meal.ID, MenuItemID: sel.MenuItemID, Role: sel.Role}
				if err := tx.CreateMealDetail(ctx, detail); err != nil {
					return fmt.Errorf("insert meal detail: %w", err)
				}
			}
			subtotal += snap.ItemPrice(it)
		}

		final := rewards.FinalPrice(subtotal, req.PointsApplied)
		awardNow := req.CustomerID != nil && s.awardOn() == rewards.AwardOnCreation
		var earned int64
		if awardNow {
			earned = rewards.PointsFor(final)
		}
		if err := tx.UpdateOrderPricing(ctx, order.ID, final, req.PointsApplied, earned); err != nil {
			return fmt.Errorf("update order price: %w", err)
		}

		if req.CustomerID != nil {
			if err := ledger.ApplyRedemption(ctx, *req.CustomerID, req.PointsApplied); err != nil {
				return err
			}
			if awardNow {
				if _, err := ledger.AwardPoints(ctx, *req.CustomerID, final); err != nil {
					return err
				}
			}
		}

		res = &CreateOrderResult{
			OrderID:       order.ID,
			Subtotal:      subtotal,
			Discount:      subtotal - final,
			TotalPrice:    final,
			CustomerID:    req.CustomerID,
			PointsApplied: req.PointsApplied,
			PointsEarned:  earned,
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	l.Info("order_created", "order_id", res.OrderID, "total_price", res.TotalPrice.String(), "points_earned", res.PointsEarned)
	s.publishCreated(ctx, res)
	return res, nil
}

// SetStatus moves an order to status. Entering completed stamps
// completed_at and adjusts inventory in the same transaction. Repeating the
// current status changes nothing.
func (s *OrderService) SetStatus(ctx context.Context, orderID uint, status string) (*StatusResult, error) {
	raw := strings.ToLower(strings.TrimSpace(status))
	if raw == "" {
		return nil, fmt.Errorf("%w: status required", ErrValidation)
	}
	next, ok := models.ParseStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	ctx, l := logging.With(ctx, "operation", "set_status", "order_id", orderID)

	var res *StatusResult
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		res = &StatusResult{OrderID: order.ID, Status: order.Status, CompletedAt: order.CompletedAt}
		if order.Status == next {
			return nil
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order %d is already %s", ErrConflict, order.ID, order.Status)
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: cannot move order %d from %s to %s", ErrConflict, order.ID, order.Status, next)
		}

		completedAt := order.CompletedAt
		if next == models.StatusCompleted && completedAt == nil {
			t := s.now()
			completedAt = &t
		}
		if err := tx.UpdateOrderStatus(ctx, order.ID, next, completedAt); err != nil {
			return err
		}
		res.Status, res.CompletedAt, res.Changed = next, completedAt, true

		if next != models.StatusCompleted {
			return nil
		}

		inv, err := inventory.NewAdjuster(tx, s.Opts.ReorderThreshold).AdjustForCompletedOrder(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("adjust inventory: %w", err)
		}
		res.Inventory = inv

		if order.CustomerID != nil && s.awardOn() == rewards.AwardOnCompletion && order.PointsEarned == 0 {
			earned, err := rewards.NewLedger(tx).AwardPoints(ctx, *order.CustomerID, order.PriceCents)
			if err != nil {
				return err
			}
			if err := tx.SetPointsEarned(ctx, order.ID, earned); err != nil {
				return err
			}
			res.PointsEarned = earned
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if res.Changed {
		l.Info("order_status_changed", "order_status", res.Status)
		s.publishStatus(ctx, res)
	}
	return res, nil
}

// GetOrder loads an order with its meals and re-prices those meals against
// the current catalog, so a stored price can be audited.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*transport.OrderDetail, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	snap, err := s.Repo.CatalogSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	subtotal := pricing.Reprice(order.Meals, snap)
	return &transport.OrderDetail{
		Order:           order,
		CatalogSubtotal: subtotal,
		CatalogPrice:    rewards.FinalPrice(subtotal, order.PointsApplied),
	}, nil
}

// ActiveOrders lists orders that are not yet completed or cancelled, newest first.
func (s *OrderService) ActiveOrders(ctx context.Context, limit int) ([]models.Order, error) {
	return s.Repo.ListOrdersByStatus(ctx, models.ActiveStatuses(), false, listLimit(limit))
}

// KitchenOrders lists what the kitchen still has to cook, oldest first,
// with item names resolved.
func (s *OrderService) KitchenOrders(ctx context.Context, limit int) ([]transport.KitchenOrder, error) {
	orders, err := s.Repo.ListOrdersByStatus(ctx, models.KitchenStatuses(), true, listLimit(limit))
	if err != nil {
		return nil, err
	}

	var itemIDs, typeIDs []uint
	for _, o := range orders {
		for _, m := range o.Meals {
			typeIDs = append(typeIDs, m.MealTypeID)
			for _, d := range m.Details {
				itemIDs = append(itemIDs, d.MenuItemID)
			}
		}
	}
	items, err := s.Repo.MenuItemsByID(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	types, err := s.Repo.MealTypesByID(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]transport.KitchenOrder, 0, len(orders))
	for _, o := range orders {
		ko := transport.KitchenOrder{
			OrderID:      o.ID,
			OrderStatus:  string(o.Status),
			CustomerName: o.CustomerName,
			Datetime:     o.Datetime,
			Meals:        make([]transport.KitchenMeal, 0, len(o.Meals)),
		}
		for _, m := range o.Meals {
			km := transport.KitchenMeal{MealID: m.ID, MealType: types[m.MealTypeID].Name}
			for _, d := range m.Details {
				km.Items = append(km.Items, transport.KitchenItem{
					MenuItemID: d.MenuItemID,
					Name:       items[d.MenuItemID].Name,
					Role:       string(d.Role),
				})
			}
			ko.Meals = append(ko.Meals, km)
		}
		out = append(out, ko)
	}
	return out, nil
}

// listLimit maps a non-positive limit to gorm's "no limit".
func listLimit(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

func (s *OrderService) ReorderItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.Repo.ReorderItems(ctx)
}
