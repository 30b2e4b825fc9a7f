package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
)

// CreateOrder, CreateMeal and CreateMealDetail get their keys from the
// table's identity column; the new id is written back into the argument.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit("Meals").Create(order).Error
}

func (r *GormRepo) CreateMeal(ctx context.Context, meal *models.Meal) error {
	return r.DB.WithContext(ctx).Omit("Details").Create(meal).Error
}

func (r *GormRepo) CreateMealDetail(ctx context.Context, detail *models.MealDetail) error {
	return r.DB.WithContext(ctx).Create(detail).Error
}

func (r *GormRepo) UpdateOrderPricing(ctx context.Context, orderID uint, price money.Cents, pointsApplied, pointsEarned int64) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"price_cents":    price,
		"points_applied": pointsApplied,
		"points_earned":  pointsEarned,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SetPointsEarned(ctx context.Context, orderID uint, points int64) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Update("points_earned", points).Error
}

// OrderForUpdate locks the order row until the surrounding transaction ends.
func (r *GormRepo) OrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.forUpdate(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus, completedAt *time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]any{
		"status":       status,
		"completed_at": completedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withMeals(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrdersByStatus returns orders in any of statuses, oldest first when
// oldestFirst is set and newest first otherwise.
func (r *GormRepo) ListOrdersByStatus(ctx context.Context, statuses []models.OrderStatus, oldestFirst bool, limit int) ([]models.Order, error) {
	order := "datetime DESC, id DESC"
	if oldestFirst {
		order = "datetime ASC, id ASC"
	}

	var orders []models.Order
	if err := r.withMeals(ctx).
		Where("status IN ?", statuses).
		Order(order).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CompletedOrders returns completed orders created in [from, to).
func (r *GormRepo) CompletedOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("status = ? AND datetime >= ? AND datetime < ?", models.StatusCompleted, from, to).
		Order("datetime ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) withMeals(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meals.id ASC") }).
		Preload("Meals.Details", func(db *gorm.DB) *gorm.DB { return db.Order("meal_details.id ASC") })
}
