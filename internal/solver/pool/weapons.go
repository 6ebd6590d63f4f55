package pool

import "github.com/relicware/gearsolve/internal/solver/item"

// WeaponPair is a candidate (first_weapon, second_weapon) combination: a
// two-hander alone, or a one-hander paired with a dagger or shield
// (spec.md §4.5's weapon-pair assembly).
type WeaponPair struct {
	FirstWeapon  item.Item
	SecondWeapon *item.Item // nil for a two-hander, which occupies both slots alone
}

// SplitFirstWeapons partitions a first_weapon bucket into one-handers and
// two-handers (DisablesSecondWeapon true means two-handed).
func SplitFirstWeapons(items []item.Item) (oneHanders, twoHanders []item.Item) {
	for _, it := range items {
		if it.DisablesSecondWeapon {
			twoHanders = append(twoHanders, it)
		} else {
			oneHanders = append(oneHanders, it)
		}
	}
	return oneHanders, twoHanders
}

// SplitSecondWeapons partitions a second_weapon bucket into daggers and
// shields.
func SplitSecondWeapons(items []item.Item) (daggers, shields []item.Item) {
	for _, it := range items {
		if it.IsDagger() {
			daggers = append(daggers, it)
		} else if it.IsShield() {
			shields = append(shields, it)
		}
	}
	return daggers, shields
}

// AssembleWeaponPairs builds the candidate set `{(two_hander,)} ∪
// (one_hander × (daggers ∪ shields))` (spec.md §4.5). When skipShields is
// set, the two-hander branch is dropped entirely, per spec.md's literal
// wording — shields themselves still populate the off-hand side.
func AssembleWeaponPairs(oneHanders, twoHanders, daggers, shields []item.Item, skipShields bool) []WeaponPair {
	var pairs []WeaponPair

	if !skipShields {
		for _, th := range twoHanders {
			pairs = append(pairs, WeaponPair{FirstWeapon: th})
		}
	}

	offhands := make([]item.Item, 0, len(daggers)+len(shields))
	offhands = append(offhands, daggers...)
	offhands = append(offhands, shields...)

	for _, oh := range oneHanders {
		for i := range offhands {
			off := offhands[i]
			pairs = append(pairs, WeaponPair{FirstWeapon: oh, SecondWeapon: &off})
		}
	}

	return pairs
}

// Stats returns the weapon pair as one item carrying the pair's combined
// attribute contribution.
func (w WeaponPair) Stats() item.Item {
	combined := w.FirstWeapon
	if w.SecondWeapon != nil {
		combined.Attributes = combined.Attributes.Add(w.SecondWeapon.Attributes)
	}
	return combined
}
