package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
)

// GormRepo is the single data-access type. Outside a transaction DB is the
// pool; inside InTx it is bound to the transaction, so every component that
// receives it writes through the same unit of work.
type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// InTx runs fn in one transaction. fn's error (or a panic) rolls back
// everything written through the repo it was given.
func (r *GormRepo) InTx(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

// forUpdate adds SELECT ... FOR UPDATE where the dialect has row locks.
func (r *GormRepo) forUpdate(ctx context.Context) *gorm.DB {
	q := r.DB.WithContext(ctx)
	if r.DB.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}
