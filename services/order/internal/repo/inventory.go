package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
)

// ConsumedItems counts meal_detail rows per menu item for one order.
func (r *GormRepo) ConsumedItems(ctx context.Context, orderID uint) ([]models.ItemQuantity, error) {
	var rows []models.ItemQuantity
	err := r.DB.WithContext(ctx).
		Table("meal_details").
		Select("meal_details.menu_item_id AS menu_item_id, COUNT(*) AS quantity").
		Joins("JOIN meals ON meals.id = meal_details.meal_id").
		Where("meals.order_id = ?", orderID).
		Group("meal_details.menu_item_id").
		Order("meal_details.menu_item_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DecrementStock subtracts qty only while stock covers it. The conditional
// UPDATE holds the row lock, so concurrent completions cannot lose updates.
func (r *GormRepo) DecrementStock(ctx context.Context, menuItemID uint, qty int64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id = ? AND stock >= ?", menuItemID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MenuItemStock reports the current stock, or found=false for items that
// are not in inventory.
func (r *GormRepo) MenuItemStock(ctx context.Context, id uint) (int64, bool, error) {
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Select("id", "stock").Where("id = ?", id).Limit(1).Find(&items).Error; err != nil {
		return 0, false, err
	}
	if len(items) == 0 {
		return 0, false, nil
	}
	return items[0].Stock, true, nil
}

// FlagReorder sets reorder on every item in ids whose stock is below
// threshold and returns those items.
func (r *GormRepo) FlagReorder(ctx context.Context, ids []uint, threshold int64) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var low []models.MenuItem
	if err := r.DB.WithContext(ctx).
		Where("id IN ? AND stock < ?", ids, threshold).
		Order("id ASC").
		Find(&low).Error; err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return nil, nil
	}

	lowIDs := make([]uint, len(low))
	for i := range low {
		lowIDs[i] = low[i].ID
		low[i].Reorder = true
	}
	if err := r.DB.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id IN ?", lowIDs).
		Update("reorder", true).Error; err != nil {
		return nil, err
	}
	return low, nil
}

func (r *GormRepo) ReorderItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Where("reorder = ?", true).Order("stock ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
