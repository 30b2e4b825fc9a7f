package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/inventory"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/testdb"
)

func seedOrder(t *testing.T, r *repo.GormRepo, items ...uint) uint {
	t.Helper()
	ctx := context.Background()
	o := &models.Order{Status: models.StatusPending, Datetime: time.Now().UTC()}
	require.NoError(t, r.CreateOrder(ctx, o))
	m := &models.Meal{OrderID: o.ID, MealTypeID: testdb.Plate}
	require.NoError(t, r.CreateMeal(ctx, m))
	for _, id := range items {
		require.NoError(t, r.CreateMealDetail(ctx, &models.MealDetail{MealID: m.ID, MenuItemID: id, Role: models.RoleEntree}))
	}
	return o.ID
}

func stock(t *testing.T, db *gorm.DB, id uint) models.MenuItem {
	t.Helper()
	var it models.MenuItem
	require.NoError(t, db.First(&it, id).Error)
	return it
}

func TestAdjustForCompletedOrder(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedCatalog(t, db)
	r := &repo.GormRepo{DB: db}

	// Beijing 12 -> 9 (reorder), OrangeChicken 50 -> 49, FriedRice 1 short by 1, 555 untracked
	orderID := seedOrder(t, r,
		testdb.Beijing, testdb.Beijing, testdb.Beijing,
		testdb.OrangeChicken,
		testdb.FriedRice, testdb.FriedRice,
		555,
	)

	res, err := inventory.NewAdjuster(r, 10).AdjustForCompletedOrder(context.Background(), orderID)
	require.NoError(t, err)

	assert.Len(t, res.Consumed, 4)
	assert.ElementsMatch(t, []inventory.Shortage{
		{MenuItemID: testdb.FriedRice, Requested: 2, Stock: 1},
		{MenuItemID: 555, Requested: 1, Untracked: true},
	}, res.Shortages)

	reordered := make([]uint, 0, len(res.Reordered))
	for _, it := range res.Reordered {
		reordered = append(reordered, it.ID)
	}
	assert.ElementsMatch(t, []uint{testdb.Beijing, testdb.FriedRice}, reordered)

	beijing := stock(t, db, testdb.Beijing)
	assert.EqualValues(t, 9, beijing.Stock)
	assert.True(t, beijing.Reorder)

	chicken := stock(t, db, testdb.OrangeChicken)
	assert.EqualValues(t, 49, chicken.Stock)
	assert.False(t, chicken.Reorder)

	rice := stock(t, db, testdb.FriedRice)
	assert.EqualValues(t, 1, rice.Stock)
	assert.True(t, rice.Reorder)
}

func TestAdjustForCompletedOrder_StockNeverNegative(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedCatalog(t, db)
	r := &repo.GormRepo{DB: db}
	adj := inventory.NewAdjuster(r, 0)

	for i := 0; i < 3; i++ {
		orderID := seedOrder(t, r, testdb.ChowMein, testdb.ChowMein, testdb.ChowMein, testdb.ChowMein)
		_, err := adj.AdjustForCompletedOrder(context.Background(), orderID)
		require.NoError(t, err)
	}

	// 11 -> 7 -> 3 -> guard fails at 3 < 4
	it := stock(t, db, testdb.ChowMein)
	assert.EqualValues(t, 3, it.Stock)
	assert.True(t, it.Reorder)
}

func TestAdjustForCompletedOrder_EmptyOrder(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedCatalog(t, db)
	r := &repo.GormRepo{DB: db}

	orderID := seedOrder(t, r)
	res, err := inventory.NewAdjuster(r, 10).AdjustForCompletedOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Empty(t, res.Consumed)
	assert.Empty(t, res.Shortages)
	assert.Empty(t, res.Reordered)
}
