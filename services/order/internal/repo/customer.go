package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
)

var ErrBalanceTooLow = errors.New("rewards balance too low")

func (r *GormRepo) CustomerForUpdate(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.forUpdate(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// AdjustPoints adds delta to the balance in one statement. A negative delta
// only applies while the balance covers it.
func (r *GormRepo) AdjustPoints(ctx context.Context, id uint, delta int64) error {
	q := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("rewards_points >= ?", -delta)
	}

	res := q.Update("rewards_points", gorm.Expr("rewards_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrBalanceTooLow
	}
	return nil
}
