package models

import (
	"time"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
)

type Role string

const (
	RoleEntree Role = "entree"
	RoleSide   Role = "side"
	RoleDrink  Role = "drink"
)

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement"                     json:"order_id"`
	PriceCents    money.Cents `gorm:"not null;default:0;check:price_cents >= 0"    json:"price"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;index"              json:"order_status"`
	StaffID       *uint       `gorm:"index"                                        json:"staff_id"`
	CustomerID    *uint       `gorm:"index"                                        json:"customer_id"`
	CustomerName  *string     `gorm:"type:varchar(100)"                            json:"customer_name"`
	PointsApplied int64       `gorm:"not null;default:0"                           json:"points_applied"`
	PointsEarned  int64       `gorm:"not null;default:0"                           json:"points_earned"`
	Datetime      time.Time   `gorm:"not null;index"                               json:"datetime"`
	CompletedAt   *time.Time  `                                                    json:"completed_at"`
	Meals         []Meal      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

type Meal struct {
	ID         uint         `gorm:"primaryKey;autoIncrement"                      json:"meal_id"`
	OrderID    uint         `gorm:"index;not null"                                json:"order_id"`
	MealTypeID uint         `gorm:"index;not null"                                json:"meal_type_id"`
	Details    []MealDetail `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"details,omitempty"`
}

// MealDetail.MenuItemID carries no foreign key: unknown items may be
// accepted at zero upcharge when the catalog is not strict.
type MealDetail struct {
	ID         uint `gorm:"primaryKey;autoIncrement"         json:"detail_id"`
	MealID     uint `gorm:"index;not null"                   json:"meal_id"`
	MenuItemID uint `gorm:"index;not null"                   json:"menu_item_id"`
	Role       Role `gorm:"type:varchar(10);not null"        json:"role"`
}

type Customer struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Name          string `gorm:"type:varchar(100)"                          json:"name"`
	RewardsPoints int64  `gorm:"not null;default:0;check:rewards_points >= 0" json:"rewards_points"`
}

type MenuItem struct {
	ID            uint        `gorm:"primaryKey;autoIncrement"          json:"menu_item_id"`
	Name          string      `gorm:"type:varchar(100);not null"        json:"name"`
	UpchargeCents money.Cents `gorm:"not null;default:0"                json:"upcharge"`
	Stock         int64       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Reorder       bool        `gorm:"not null;default:false"            json:"reorder"`
}

type MealType struct {
	ID          uint        `gorm:"primaryKey;autoIncrement"   json:"meal_type_id"`
	Name        string      `gorm:"type:varchar(50);not null"  json:"name"`
	PriceCents  money.Cents `gorm:"not null"                   json:"price"`
	EntreeCount int         `gorm:"not null;default:0"         json:"entree_count"`
	SideCount   int         `gorm:"not null;default:0"         json:"side_count"`
	DrinkSize   string      `gorm:"type:varchar(20)"           json:"drink_size"`
}

// ItemQuantity is how many detail rows of one menu item an order consumed.
type ItemQuantity struct {
	MenuItemID uint  `json:"menu_item_id"`
	Quantity   int64 `json:"quantity"`
}

func All() []any {
	return []any{&MealType{}, &MenuItem{}, &Customer{}, &Order{}, &Meal{}, &MealDetail{}}
}
