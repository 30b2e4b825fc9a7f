// Package rewards applies and awards loyalty points. Every balance change
// goes through the Store it was built with, which callers bind to the
// order's transaction.
package rewards

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
)

// PointsPerDollar is how many points buy one currency unit of discount.
const PointsPerDollar = 25

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInsufficientPoints = errors.New("insufficient rewards points")
)

type AwardPolicy string

const (
	AwardOnCreation   AwardPolicy = "creation"
	AwardOnCompletion AwardPolicy = "completion"
)

func ParseAwardPolicy(s string) (AwardPolicy, bool) {
	switch p := AwardPolicy(s); p {
	case AwardOnCreation, AwardOnCompletion:
		return p, true
	}
	return "", false
}

type Store interface {
	CustomerForUpdate(ctx context.Context, id uint) (*models.Customer, error)
	AdjustPoints(ctx context.Context, id uint, delta int64) error
}

type Ledger struct {
	store Store
}

func NewLedger(s Store) *Ledger {
	return &Ledger{store: s}
}

// Discount converts points to money: 25 points are worth one dollar.
func Discount(points int64) money.Cents {
	if points <= 0 {
		return 0
	}
	return money.Cents(points * 100 / PointsPerDollar)
}

func FinalPrice(total money.Cents, points int64) money.Cents {
	return money.Max(0, total-Discount(points))
}

// PointsFor is one point per whole currency unit paid.
func PointsFor(final money.Cents) int64 {
	return final.Dollars()
}

func (l *Ledger) ValidateRedemption(ctx context.Context, customerID uint, points int64) error {
	c, err := l.customer(ctx, customerID)
	if err != nil {
		return err
	}
	if points > c.RewardsPoints {
		return fmt.Errorf("%w: requested %d, balance %d", ErrInsufficientPoints, points, c.RewardsPoints)
	}
	return nil
}

func (l *Ledger) ApplyRedemption(ctx context.Context, customerID uint, points int64) error {
	if points <= 0 {
		return nil
	}
	return l.adjust(ctx, customerID, -points)
}

// AwardPoints credits PointsFor(final) and returns the amount credited.
// The customer must exist even when nothing is earned.
func (l *Ledger) AwardPoints(ctx context.Context, customerID uint, final money.Cents) (int64, error) {
	earned := PointsFor(final)
	if earned == 0 {
		if _, err := l.customer(ctx, customerID); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err := l.adjust(ctx, customerID, earned); err != nil {
		return 0, err
	}
	return earned, nil
}

func (l *Ledger) customer(ctx context.Context, id uint) (*models.Customer, error) {
	c, err := l.store.CustomerForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCustomerNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (l *Ledger) adjust(ctx context.Context, id uint, delta int64) error {
	err := l.store.AdjustPoints(ctx, id, delta)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: id %d", ErrCustomerNotFound, id)
	case errors.Is(err, repo.ErrBalanceTooLow):
		return fmt.Errorf("%w: %w", ErrInsufficientPoints, err)
	default:
		return err
	}
}
