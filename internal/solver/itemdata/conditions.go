// Package itemdata holds the hand-maintained item-condition table: a
// compile-time mapping from item id to extra min/max bounds that apply
// only while that item is equipped. This mirrors item_conditions.py in
// the original implementation — the game's data files don't carry this
// information, so it's maintained by hand here, same as there.
package itemdata

import (
	"sync"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// Bound is one (mins, maxs) entry in an item's condition list. Either side
// may be the all-sentinel value, meaning that side imposes no constraint.
type Bound struct {
	Mins stats.SetMinimums
	Maxs stats.SetMaximums
}

// conditions maps item id to its declared bound list. Populated by init()
// from the table below; never mutated after package init.
var conditions = map[item.ID][]Bound{}

func register(id item.ID, bounds ...Bound) {
	conditions[id] = append(conditions[id], bounds...)
}

func init() {
	// Salty Cape: 40 <= block <= 50
	blockBetween40And50 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.Block = 40 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.Block = 50 }),
	}
	register(27293, blockBetween40And50)
	register(27294, blockBetween40And50)

	// Lord Zaens's Cape, Hairlarious Cloak, Excarnus Veil (Souvenir):
	// 40 <= critical_hit <= 50
	critBetween40And50 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.CriticalHit = 40 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.CriticalHit = 50 }),
	}
	for _, id := range []item.ID{27445, 27446, 26302, 26322, 27695} {
		register(id, critBetween40And50)
	}

	// Horned Headgear, Hagen Daz's Helmet (Souvenir): 400 <= distance_mastery <= 500
	distBetween400And500 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.DistanceMastery = 400 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.DistanceMastery = 500 }),
	}
	for _, id := range []item.ID{26292, 26313, 27747} {
		register(id, distBetween400And500)
	}

	// Amon Amarth Breastplate: 400 <= lock <= 500
	lockBetween400And500 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.Lock = 400 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.Lock = 500 }),
	}
	register(27443, lockBetween400And500)
	register(27444, lockBetween400And500)

	// Jeering Epaulettes: 500 <= dodge <= 600
	dodgeBetween500And600 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.Dodge = 500 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.Dodge = 600 }),
	}
	register(26304, dodgeBetween500And600)
	register(26324, dodgeBetween500And600)

	// Breastplate of Shadows, Biddyplate, Dehydrated Breastplate, Shademail:
	// 500 <= lock <= 600
	lockBetween500And600 := Bound{
		Mins: withMin(stats.NewSetMinimums(), func(m *stats.SetMinimums) { m.Lock = 500 }),
		Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.Lock = 600 }),
	}
	for _, id := range []item.ID{26299, 26318, 26953, 26954, 27297, 27298, 26290, 26311} {
		register(id, lockBetween500And600)
	}

	// DigiArv Belt, Spicy Belt, Bubuckle, Trool Warrior Spikes,
	// Ancient Trool Warrior Spikes: ap <= 11
	apLTE11 := Bound{Maxs: withMax(stats.NewSetMaximums(), func(m *stats.SetMaximums) { m.AP = 11 })}
	for _, id := range []item.ID{27368, 27369, 26308, 26328, 9531, 27774} {
		register(id, apLTE11)
	}
}

// DefaultMin returns the all-sentinel minimums vector used for items with
// no registered condition.
func DefaultMin() stats.SetMinimums { return stats.NewSetMinimums() }

// DefaultMax returns the all-sentinel maximums vector used for items with
// no registered condition.
func DefaultMax() stats.SetMaximums { return stats.NewSetMaximums() }

func withMin(m stats.SetMinimums, f func(*stats.SetMinimums)) stats.SetMinimums {
	f(&m)
	return m
}

func withMax(m stats.SetMaximums, f func(*stats.SetMaximums)) stats.SetMaximums {
	f(&m)
	return m
}

var (
	cacheMu sync.Mutex
	cache   = map[item.ID]Bound{}
)

// GetConditions returns the intersection of all registered min/max bounds
// for id, or the all-sentinel pair if id has none. Results are memoized:
// get_conditions is a pure function of the immutable table, so repeated
// calls for the same item during search reuse the same computed bound
// (spec.md §4.2, §5 caches).
func GetConditions(id item.ID) Bound {
	cacheMu.Lock()
	if b, ok := cache[id]; ok {
		cacheMu.Unlock()
		return b
	}
	cacheMu.Unlock()

	bounds, ok := conditions[id]
	var result Bound
	if ok {
		result = Bound{Mins: stats.NewSetMinimums(), Maxs: stats.NewSetMaximums()}
		for _, b := range bounds {
			result.Mins = result.Mins.And(b.Mins)
			result.Maxs = result.Maxs.And(b.Maxs)
		}
	} else {
		result = Bound{Mins: stats.NewSetMinimums(), Maxs: stats.NewSetMaximums()}
	}

	cacheMu.Lock()
	cache[id] = result
	cacheMu.Unlock()
	return result
}

// HasUnhandledCondition reports whether id's registered condition bounds
// touch any field the analyzer cannot reason about (SetMinimums/Maximums
// .Unhandled()), per spec.md §4.1's initial filter.
func HasUnhandledCondition(id item.ID) bool {
	b := GetConditions(id)
	return b.Mins.Unhandled() || b.Maxs.Unhandled()
}
