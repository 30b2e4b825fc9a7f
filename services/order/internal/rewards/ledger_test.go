package rewards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/rewards"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/testdb"
)

func TestDiscountMath(t *testing.T) {
	assert.Equal(t, money.Cents(400), rewards.Discount(100))
	assert.Equal(t, money.Cents(4), rewards.Discount(1))
	assert.Equal(t, money.Cents(0), rewards.Discount(0))
	assert.Equal(t, money.Cents(0), rewards.Discount(-50))

	assert.Equal(t, money.Cents(350), rewards.FinalPrice(750, 100))
	assert.Equal(t, money.Cents(0), rewards.FinalPrice(750, 1000))
	assert.Equal(t, money.Cents(750), rewards.FinalPrice(750, 0))

	assert.EqualValues(t, 3, rewards.PointsFor(350))
	assert.EqualValues(t, 7, rewards.PointsFor(799))
	assert.EqualValues(t, 0, rewards.PointsFor(0))
}

func TestParseAwardPolicy(t *testing.T) {
	p, ok := rewards.ParseAwardPolicy("completion")
	assert.True(t, ok)
	assert.Equal(t, rewards.AwardOnCompletion, p)

	_, ok = rewards.ParseAwardPolicy("never")
	assert.False(t, ok)
}

func TestLedger_RedeemAndAward(t *testing.T) {
	db := testdb.Open(t)
	c := testdb.SeedCustomer(t, db, 100)
	ctx := context.Background()
	l := rewards.NewLedger(&repo.GormRepo{DB: db})

	require.NoError(t, l.ValidateRedemption(ctx, c.ID, 100))
	require.NoError(t, l.ApplyRedemption(ctx, c.ID, 100))
	earned, err := l.AwardPoints(ctx, c.ID, rewards.FinalPrice(750, 100))
	require.NoError(t, err)
	assert.EqualValues(t, 3, earned)

	var got models.Customer
	require.NoError(t, db.First(&got, c.ID).Error)
	assert.EqualValues(t, 3, got.RewardsPoints)
}

func TestLedger_Failures(t *testing.T) {
	db := testdb.Open(t)
	c := testdb.SeedCustomer(t, db, 10)
	ctx := context.Background()
	l := rewards.NewLedger(&repo.GormRepo{DB: db})

	err := l.ValidateRedemption(ctx, c.ID, 11)
	require.ErrorIs(t, err, rewards.ErrInsufficientPoints)

	err = l.ApplyRedemption(ctx, c.ID, 11)
	require.ErrorIs(t, err, rewards.ErrInsufficientPoints)

	err = l.ValidateRedemption(ctx, 404, 1)
	require.ErrorIs(t, err, rewards.ErrCustomerNotFound)

	_, err = l.AwardPoints(ctx, 404, 99)
	require.ErrorIs(t, err, rewards.ErrCustomerNotFound)

	_, err = l.AwardPoints(ctx, 404, 500)
	require.ErrorIs(t, err, rewards.ErrCustomerNotFound)

	var got models.Customer
	require.NoError(t, db.First(&got, c.ID).Error)
	assert.EqualValues(t, 10, got.RewardsPoints)
}
