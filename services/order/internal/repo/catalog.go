package repo

import (
	"context"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/pricing"
)

// CatalogSnapshot reads current meal type prices and menu item upcharges.
func (r *GormRepo) CatalogSnapshot(ctx context.Context) (pricing.Snapshot, error) {
	var mealTypes []models.MealType
	if err := r.DB.WithContext(ctx).Select("id", "price_cents").Find(&mealTypes).Error; err != nil {
		return pricing.Snapshot{}, err
	}

	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Select("id", "upcharge_cents").Find(&items).Error; err != nil {
		return pricing.Snapshot{}, err
	}

	return pricing.NewSnapshot(mealTypes, items), nil
}

func (r *GormRepo) MenuItemsByID(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	out := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.MenuItem
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *GormRepo) MealTypesByID(ctx context.Context, ids []uint) (map[uint]models.MealType, error) {
	out := make(map[uint]models.MealType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var types []models.MealType
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&types).Error; err != nil {
		return nil, err
	}
	for _, mt := range types {
		out[mt.ID] = mt
	}
	return out, nil
}
