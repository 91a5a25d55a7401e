// Package rules holds the closed enumerations and static lookup tables for
// the settlement grid: terrain, modifiers, features, resources, districts,
// wonders, improvements, and their intrinsic yields. All tables are
// immutable package data; nothing here carries runtime state.
package rules

import "fmt"

// YieldKind identifies one of the six yield fields.
type YieldKind uint8

const (
	YieldFood YieldKind = iota
	YieldProduction
	YieldGold
	YieldScience
	YieldCulture
	YieldFaith
)

var yieldKindNames = [...]string{"food", "production", "gold", "science", "culture", "faith"}

func (k YieldKind) String() string {
	if int(k) < len(yieldKindNames) {
		return yieldKindNames[k]
	}
	return fmt.Sprintf("yield#%d", k)
}

// Yields is a fixed record of the six yield fields. The zero value is the
// empty record with all fields at 0.
type Yields struct {
	Food       int `json:"food"`
	Production int `json:"production"`
	Gold       int `json:"gold"`
	Science    int `json:"science"`
	Culture    int `json:"culture"`
	Faith      int `json:"faith"`
}

// Add returns the field-wise sum of y and o.
func (y Yields) Add(o Yields) Yields {
	return Yields{
		Food:       y.Food + o.Food,
		Production: y.Production + o.Production,
		Gold:       y.Gold + o.Gold,
		Science:    y.Science + o.Science,
		Culture:    y.Culture + o.Culture,
		Faith:      y.Faith + o.Faith,
	}
}

// AddAmount adds n to the field named by k.
func (y *Yields) AddAmount(k YieldKind, n int) {
	switch k {
	case YieldFood:
		y.Food += n
	case YieldProduction:
		y.Production += n
	case YieldGold:
		y.Gold += n
	case YieldScience:
		y.Science += n
	case YieldCulture:
		y.Culture += n
	case YieldFaith:
		y.Faith += n
	}
}

// Get returns the field named by k.
func (y Yields) Get(k YieldKind) int {
	switch k {
	case YieldFood:
		return y.Food
	case YieldProduction:
		return y.Production
	case YieldGold:
		return y.Gold
	case YieldScience:
		return y.Science
	case YieldCulture:
		return y.Culture
	case YieldFaith:
		return y.Faith
	}
	return 0
}

// IsZero reports whether all six fields are 0.
func (y Yields) IsZero() bool {
	return y == Yields{}
}
