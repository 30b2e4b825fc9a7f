// Package pricing turns order items into a price using a catalog snapshot.
// It has no side effects, so a persisted order can be re-priced from its
// meal and meal_detail rows.
package pricing

import (
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
)

type OrderItem struct {
	MealTypeID uint
	Entrees    []uint
	Sides      []uint
	Drink      *uint
}

type Selection struct {
	MenuItemID uint
	Role       models.Role
}

// Selections lists the item's menu items in insert order: entrees, sides, drink.
func (it OrderItem) Selections() []Selection {
	out := make([]Selection, 0, len(it.Entrees)+len(it.Sides)+1)
	for _, id := range it.Entrees {
		out = append(out, Selection{MenuItemID: id, Role: models.RoleEntree})
	}
	for _, id := range it.Sides {
		out = append(out, Selection{MenuItemID: id, Role: models.RoleSide})
	}
	if it.Drink != nil {
		out = append(out, Selection{MenuItemID: *it.Drink, Role: models.RoleDrink})
	}
	return out
}

type Snapshot struct {
	MealTypes map[uint]money.Cents
	Upcharges map[uint]money.Cents
}

func NewSnapshot(mealTypes []models.MealType, items []models.MenuItem) Snapshot {
	s := Snapshot{
		MealTypes: make(map[uint]money.Cents, len(mealTypes)),
		Upcharges: make(map[uint]money.Cents, len(items)),
	}
	for _, mt := range mealTypes {
		s.MealTypes[mt.ID] = mt.PriceCents
	}
	for _, mi := range items {
		s.Upcharges[mi.ID] = mi.UpchargeCents
	}
	return s
}

// ItemPrice is the meal type base price plus every selection's upcharge.
// Unknown references contribute zero.
func (s Snapshot) ItemPrice(it OrderItem) money.Cents {
	price := s.MealTypes[it.MealTypeID]
	for _, sel := range it.Selections() {
		price += s.Upcharges[sel.MenuItemID]
	}
	return price
}

func Total(items []OrderItem, s Snapshot) money.Cents {
	var total money.Cents
	for _, it := range items {
		total += s.ItemPrice(it)
	}
	return total
}

type MissingRef struct {
	Kind string `json:"kind"`
	ID   uint   `json:"id"`
}

// Missing returns the distinct meal type and menu item references the
// snapshot does not know, in first-seen order.
func (s Snapshot) Missing(items []OrderItem) []MissingRef {
	var out []MissingRef
	seen := map[MissingRef]bool{}
	add := func(ref MissingRef) {
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	for _, it := range items {
		if _, ok := s.MealTypes[it.MealTypeID]; !ok {
			add(MissingRef{Kind: "meal_type", ID: it.MealTypeID})
		}
		for _, sel := range it.Selections() {
			if _, ok := s.Upcharges[sel.MenuItemID]; !ok {
				add(MissingRef{Kind: "menu_item", ID: sel.MenuItemID})
			}
		}
	}
	return out
}

// Reprice rebuilds order items from persisted meals.
func Reprice(meals []models.Meal, s Snapshot) money.Cents {
	items := make([]OrderItem, 0, len(meals))
	for _, m := range meals {
		it := OrderItem{MealTypeID: m.MealTypeID}
		for _, d := range m.Details {
			switch d.Role {
			case models.RoleEntree:
				it.Entrees = append(it.Entrees, d.MenuItemID)
			case models.RoleSide:
				it.Sides = append(it.Sides, d.MenuItemID)
			case models.RoleDrink:
				id := d.MenuItemID
				it.Drink = &id
			}
		}
		items = append(items, it)
	}
	return Total(items, s)
}
