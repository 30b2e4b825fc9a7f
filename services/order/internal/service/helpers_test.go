package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/service"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/testdb"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/transport"
)

type published struct {
	Topic string
	Key   string
	Event map[string]any
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, _ := event.(map[string]any)
	r.events = append(r.events, published{Topic: topic, Key: key, Event: ev})
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type failingPublisher struct{}

func (failingPublisher) PublishEvent(context.Context, string, string, any) error {
	return errors.New("kafka: broker unreachable")
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T, opts service.Options) (*service.OrderService, *gorm.DB, *recorder, *clock) {
	t.Helper()
	db := testdb.Open(t)
	testdb.SeedCatalog(t, db)

	rec := &recorder{}
	clk := &clock{t: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	svc := &service.OrderService{
		Repo:   &repo.GormRepo{DB: db},
		Events: rec,
		Opts:   opts,
		Now:    clk.now,
	}
	return svc, db, rec, clk
}

func ptr[T any](v T) *T { return &v }

// bowl is one bowl with orange chicken and chow mein: 6.00 + 1.00 + 0.50.
func bowl() transport.OrderItem {
	return transport.OrderItem{
		MealTypeID: testdb.Bowl,
		Entrees:    []uint{testdb.OrangeChicken},
		Sides:      []uint{testdb.ChowMein},
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func customerPoints(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var c models.Customer
	if err := db.First(&c, id).Error; err != nil {
		t.Fatalf("load customer: %v", err)
	}
	return c.RewardsPoints
}

func menuItem(t *testing.T, db *gorm.DB, id uint) models.MenuItem {
	t.Helper()
	var it models.MenuItem
	if err := db.First(&it, id).Error; err != nil {
		t.Fatalf("load menu item: %v", err)
	}
	return it
}
