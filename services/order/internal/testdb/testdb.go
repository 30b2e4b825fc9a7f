// Package testdb opens a migrated in-memory sqlite database for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/restaurant_pos/pkg/db"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Catalog ids seeded by SeedCatalog.
const (
	Bowl  uint = 1
	Plate uint = 2

	OrangeChicken uint = 10
	Beijing       uint = 11
	ChowMein      uint = 20
	FriedRice     uint = 21
	Lemonade      uint = 30
)

// SeedCatalog inserts a small menu: a $6.00 bowl and $8.00 plate, entrees
// with $1.00 and $1.50 upcharges, a $0.50 side, a free side and a $0.25 drink.
func SeedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	mealTypes := []models.MealType{
		{ID: Bowl, Name: "Bowl", PriceCents: 600, EntreeCount: 1, SideCount: 1},
		{ID: Plate, Name: "Plate", PriceCents: 800, EntreeCount: 2, SideCount: 1, DrinkSize: "medium"},
	}
	require.NoError(t, db.Create(&mealTypes).Error)

	items := []models.MenuItem{
		{ID: OrangeChicken, Name: "Orange Chicken", UpchargeCents: money.Cents(100), Stock: 50},
		{ID: Beijing, Name: "Beijing Beef", UpchargeCents: money.Cents(150), Stock: 12},
		{ID: ChowMein, Name: "Chow Mein", UpchargeCents: money.Cents(50), Stock: 11},
		{ID: FriedRice, Name: "Fried Rice", Stock: 1},
		{ID: Lemonade, Name: "Lemonade", UpchargeCents: money.Cents(25), Stock: 100},
	}
	require.NoError(t, db.Create(&items).Error)
}

func SeedCustomer(t *testing.T, db *gorm.DB, points int64) *models.Customer {
	t.Helper()

	c := &models.Customer{Name: "Test Customer", RewardsPoints: points}
	require.NoError(t, db.Create(c).Error)
	return c
}
