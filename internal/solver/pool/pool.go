// Package pool builds per-slot candidate pools from the full item catalog:
// filtering, bucketing, ranking, sim-key deduplication, adaptive trimming,
// and weapon-pair assembly (spec.md §4.5).
package pool

import (
	"math"
	"sort"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/itemdata"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// LightWeaponExpertDaggerID and SublimationDaggerID are the negative,
// non-catalog ids the two synthetic daggers are injected under (SPEC_FULL
// Supplemented Features #1/#2). Both share item_id = -2 in the original;
// kept distinct here so a pool can carry both without a key collision.
const (
	LightWeaponExpertDaggerID item.ID = -1
	SublimationDaggerID       item.ID = -2
)

// Sublimation ids accumulating the dagger multiplier c (SPEC_FULL #2).
const (
	sublimationDaggerTier1 = 28908 // +1
	sublimationDaggerTier2 = 28807 // +2
	sublimationDaggerTier3 = 28909 // +3
)

// LightWeaponExpertDagger builds the synthetic dagger injected when
// use_light_weapon_expert is set: elemental_mastery = floor(level * 1.5).
func LightWeaponExpertDagger(level int) item.Item {
	em := int(math.Floor(float64(level) * 1.5))
	return item.SynthesizeDagger(LightWeaponExpertDaggerID, level, em)
}

// SublimationDaggerMultiplier sums the tiered sublimation contributions
// (28908:+1, 28807:+2, 28909:+3), capped at 6.
func SublimationDaggerMultiplier(sublimations []int) int {
	c := 0
	for _, s := range sublimations {
		switch s {
		case sublimationDaggerTier1:
			c++
		case sublimationDaggerTier2:
			c += 2
		case sublimationDaggerTier3:
			c += 3
		}
	}
	if c > 6 {
		c = 6
	}
	return c
}

// SublimationDagger builds the second synthetic dagger, present only when
// c > 0: elemental_mastery = floor(level * 0.25 * min(c,6)).
func SublimationDagger(level int, sublimations []int) (item.Item, bool) {
	c := SublimationDaggerMultiplier(sublimations)
	if c == 0 {
		return item.Item{}, false
	}
	em := int(math.Floor(float64(level) * 0.25 * float64(c)))
	return item.SynthesizeDagger(SublimationDaggerID, level, em), true
}

// Filter holds the initial per-item predicates (spec.md §4.5 step 1).
type Filter struct {
	Level            int
	LowBound         int
	AllowedRarities  []stats.Rarity
	ForbiddenIDs     map[item.ID]bool
	ForbiddenNames   map[string]bool
	FindableAPMPSlack bool // findableAP_MP > FINDABLE_AP_MP_NEEDED
}

func (f Filter) allowsRarity(r stats.Rarity) bool {
	for _, ar := range f.AllowedRarities {
		if ar == r {
			return true
		}
	}
	return false
}

// relicEpicLevelOverrides special-cases three epics whose usable level
// window extends below the normal tolerance band (spec.md §4.5 step 1:
// "per-id overrides for three hard-coded epics").
var relicEpicLevelOverrides = map[item.ID][2]int{
	9723:  {65, 140},  // Gelano
	27281: {125, 185}, // Bagus Shushu
	27814: {215, 230}, // Mopy King Gloves
}

func (f Filter) levelOK(it item.Item) bool {
	if it.Slot == stats.Mount || it.Slot == stats.Pet {
		return true
	}
	if window, ok := relicEpicLevelOverrides[it.ID]; ok {
		return f.Level >= window[0] && f.Level <= window[1]
	}
	return f.Level >= it.Level && it.Level >= f.LowBound
}

// missingCommonMajor reports whether a non-relic, non-epic item fails to
// contribute the "common major" ap+mp its slot implies at this level
// (mirrors missing_common_major in solver.py). Relic and epic items are
// never reported missing.
func missingCommonMajor(it item.Item, level int, commonAPMPSlots map[stats.Slot]int) bool {
	if it.IsEpic() || it.IsRelic() {
		return false
	}
	req := 0
	if lvl, ok := commonAPMPSlots[it.Slot]; ok && lvl <= level {
		req++
	}
	return it.Attributes.AP+it.Attributes.MP < req
}

// commonAPMPSlots is the subset of apMPSlotLevels relevant to the pool
// builder's "rarity-adjusted ap+mp minimum" filter (spec.md §4.5 step 1),
// matching solver.py's common_ap_mp_sum_gt_0 table.
var commonAPMPSlots = map[stats.Slot]int{
	stats.Neck:        20,
	stats.Back:        20,
	stats.FirstWeapon: 50,
	stats.Chest:       50,
	stats.Legs:        50,
}

// InitialFilter applies spec.md §4.5 step 1 to a single catalog item.
func InitialFilter(it item.Item, f Filter) bool {
	if f.ForbiddenIDs[it.ID] || f.ForbiddenNames[it.Name] {
		return false
	}
	if itemdata.HasUnhandledCondition(it.ID) {
		return false
	}
	if !it.Slot.RarityExempt() && !f.allowsRarity(it.Rarity) {
		return false
	}
	if !f.levelOK(it) {
		return false
	}
	if !f.FindableAPMPSlack && missingCommonMajor(it, f.Level, commonAPMPSlots) {
		return false
	}
	return true
}

// SimKey is the deduplication key from spec.md §4.5 step 4: two items
// with the same SimKey are indistinguishable under the constraint check
// and objective ordering, so only the best-scoring one per key is kept.
type SimKey struct {
	DisablesSecondWeapon bool
	AP, MP, RA, WP       int
	CriticalHit          int // only populated if unraveling/Ecaflip
	CriticalMastery      int // only populated if unraveling
	Block                int // only populated if Bravery passive active
}

// SimKeyOptions controls which optional fields SimKeyFor populates.
type SimKeyOptions struct {
	IncludeCriticalHit      bool
	IncludeCriticalMastery  bool
	IncludeBlock            bool
}

// SimKeyFor computes it's simulation key under the given options.
func SimKeyFor(it item.Item, opts SimKeyOptions) SimKey {
	k := SimKey{
		DisablesSecondWeapon: it.DisablesSecondWeapon,
		AP:                   it.Attributes.AP,
		MP:                   it.Attributes.MP,
		RA:                   it.Attributes.RA,
		WP:                   it.Attributes.WP,
	}
	if opts.IncludeCriticalHit {
		k.CriticalHit = it.Attributes.CriticalHit
	}
	if opts.IncludeCriticalMastery {
		k.CriticalMastery = it.Attributes.CriticalMastery
	}
	if opts.IncludeBlock {
		k.Block = it.Attributes.Block
	}
	return k
}

// Bucket is a ranked, deduplicated candidate pool for a single slot.
type Bucket struct {
	Slot  stats.Slot
	Items []item.Item
}

// RankByCritScoreKey sorts items by CritScoreKey descending, computed
// with the given priority/class/options and base critical_hit.
func RankByCritScoreKey(items []item.Item, p stats.StatPriority, class stats.Class, opts score.Options, baseCrit int) []item.Item {
	ranked := make([]item.Item, len(items))
	copy(ranked, items)
	keys := make(map[item.ID]float64, len(ranked))
	for _, it := range ranked {
		keys[it.ID] = score.CritScoreKey(it.AsStats(), p, class, opts, baseCrit)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return keys[ranked[i].ID] > keys[ranked[j].ID]
	})
	return ranked
}

// Dedupe keeps at most k items per SimKey, in the input's rank order
// (spec.md §4.5 step 4). k is 2 for left_hand, else 1 — callers pass the
// slot's cardinality-derived k.
func Dedupe(ranked []item.Item, k int, opts SimKeyOptions) []item.Item {
	seen := map[SimKey]int{}
	out := make([]item.Item, 0, len(ranked))
	for _, it := range ranked {
		key := SimKeyFor(it, opts)
		if seen[key] >= k {
			continue
		}
		seen[key]++
		out = append(out, it)
	}
	return out
}

// TrimToDepth keeps the top (searchDepth+k) items of a ranked,
// deduplicated pool, then augments it for diversity per spec.md §4.5
// step 5: for ap/mp/ra/wp and values {0,1,2}, ensure at least k items
// providing >= that value survive, pulling additional items back in from
// the pre-trim ranked list if the plain top-N cut would have dropped
// every qualifying item for some (stat, value) pair.
func TrimToDepth(ranked []item.Item, searchDepth, k int) []item.Item {
	limit := searchDepth + k
	if limit >= len(ranked) {
		return ranked
	}
	kept := make([]item.Item, limit)
	copy(kept, ranked[:limit])
	keptSet := map[item.ID]bool{}
	for _, it := range kept {
		keptSet[it.ID] = true
	}

	for _, stat := range []string{"ap", "mp", "ra", "wp"} {
		for _, value := range []int{0, 1, 2} {
			count := 0
			for _, it := range kept {
				if statValue(it, stat) >= value {
					count++
				}
			}
			for count < k {
				candidate := findUnkept(ranked, keptSet, stat, value)
				if candidate == nil {
					break
				}
				kept = append(kept, *candidate)
				keptSet[candidate.ID] = true
				count++
			}
		}
	}
	return kept
}

func findUnkept(ranked []item.Item, kept map[item.ID]bool, stat string, value int) *item.Item {
	for i := range ranked {
		it := ranked[i]
		if kept[it.ID] {
			continue
		}
		if statValue(it, stat) >= value {
			return &ranked[i]
		}
	}
	return nil
}

func statValue(it item.Item, stat string) int {
	switch stat {
	case "ap":
		return it.Attributes.AP
	case "mp":
		return it.Attributes.MP
	case "ra":
		return it.Attributes.RA
	case "wp":
		return it.Attributes.WP
	}
	return 0
}

// BuildBucket runs the full per-slot pipeline: filter, rank, dedupe, trim.
func BuildBucket(slot stats.Slot, catalog []item.Item, f Filter, p stats.StatPriority, class stats.Class, opts score.Options, baseCrit int, simOpts SimKeyOptions, tuning config.TuningConfig) Bucket {
	var filtered []item.Item
	for _, it := range catalog {
		if it.Slot != slot {
			continue
		}
		if InitialFilter(it, f) {
			filtered = append(filtered, it)
		}
	}

	ranked := RankByCritScoreKey(filtered, p, class, opts, baseCrit)

	k := 1
	if slot == stats.LeftHand {
		k = 2
	}
	deduped := Dedupe(ranked, k, simOpts)

	var trimmed []item.Item
	if !tuning.Exhaustive {
		trimmed = TrimToDepth(deduped, tuning.SearchDepth, k)
	} else {
		trimmed = deduped
	}

	return Bucket{Slot: slot, Items: trimmed}
}
