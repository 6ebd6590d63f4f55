// Package item defines the equippable item record and the catalog filter
// helpers the pool builder and search kernel share.
package item

import "github.com/relicware/gearsolve/internal/solver/stats"

// ID identifies an item uniquely within the catalog. Synthetic items
// injected by the pool builder (the light-weapon-expert dagger, the
// sublimation-driven dagger) use negative IDs, matching the original
// solver's convention (item_id = -2).
type ID int

// Item is an immutable catalog record. Items are constructed once at
// catalog load and never mutated afterward; the solver only ever reads
// them.
type Item struct {
	ID     ID
	Name   string
	Slot   stats.Slot
	Level  int
	Rarity stats.Rarity

	// TypeID is finer-grained than Slot — e.g. dagger (112) vs shield (189)
	// both occupy SecondWeapon.
	TypeID int

	// DisablesSecondWeapon is true for two-handed first weapons: if worn,
	// SecondWeapon must stay empty.
	DisablesSecondWeapon bool

	Attributes stats.Stats
}

// Dagger and shield TypeIDs, matching the original catalog's type codes.
const (
	TypeDagger = 112
	TypeShield = 189
)

// AsStats returns the item's attribute vector. Items carry their
// contribution directly as a Stats value, so this is a cheap accessor
// kept distinct from the field for readability at call sites and to match
// the EquipableItem.as_stats() shape in the original solver.
func (i Item) AsStats() stats.Stats { return i.Attributes }

// IsRelic reports whether the item is Relic rarity.
func (i Item) IsRelic() bool { return i.Rarity.IsRelic() }

// IsEpic reports whether the item is Epic rarity.
func (i Item) IsEpic() bool { return i.Rarity.IsEpic() }

// IsDagger reports whether a SecondWeapon item is a dagger (as opposed to
// a shield).
func (i Item) IsDagger() bool { return i.TypeID == TypeDagger }

// IsShield reports whether a SecondWeapon item is a shield.
func (i Item) IsShield() bool { return i.TypeID == TypeShield }

// SynthesizeDagger returns an attribute-only dagger with a negative,
// non-catalog ID, used by the pool builder to inject the light-weapon-expert
// and sublimation-driven daggers (SPEC_FULL Supplemented Features #1, #2).
func SynthesizeDagger(id ID, level int, elementalMastery int) Item {
	return Item{
		ID:         id,
		Name:       "synthetic dagger",
		Slot:       stats.SecondWeapon,
		Level:      level,
		Rarity:     stats.Legendary,
		TypeID:     TypeDagger,
		Attributes: stats.Stats{ElementalMastery: elementalMastery},
	}
}
