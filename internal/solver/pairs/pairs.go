// Package pairs enumerates candidate (relic, epic) pairs from the
// filtered relic/epic pools, including the four nation-set forced pairs
// and a z-score-normalized ranking used to prune them (spec.md §4.6).
package pairs

import (
	"math"
	"sort"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// Pair is a candidate (relic?, epic?) combination. Either side may be
// absent; both absent is valid (spec.md §4.6).
type Pair struct {
	Relic *item.Item
	Epic  *item.Item
}

// NationRelicEpicIDs pairs each nation's relic sword with its matching
// epic ring: index i is the sword, index i+4 is the ring (solver.py's
// NATION_RELIC_EPIC_IDS, preserved verbatim so index i+4 still lines up
// with sword i's ring).
var NationRelicEpicIDs = [8]item.ID{
	26494, 26495, 26496, 26497, // Amakna, Sufokia, Bonta, Brakmar swords
	26575, 26576, 26577, 26578, // matching rings
}

// NationPairs returns the four (sword, ring) forced pairs for nation
// sets, restricted to swords/rings actually present in byID. Only called
// when neither relics nor epics are forced and the level window permits
// it (spec.md §4.6: "when both are unforced and level >= 200").
func NationPairs(byID map[item.ID]item.Item) []Pair {
	var out []Pair
	for i := 0; i < 4; i++ {
		sword, swordOK := byID[NationRelicEpicIDs[i]]
		ring, ringOK := byID[NationRelicEpicIDs[i+4]]
		if swordOK && ringOK {
			s, r := sword, ring
			out = append(out, Pair{Relic: &s, Epic: &r})
		}
	}
	return out
}

// Occupancy describes how many forced items already sit in each slot,
// used by Valid to reject pairs that would overflow left_hand or
// collide with a non-left_hand forced item.
type Occupancy struct {
	ForcedSlotCounts map[stats.Slot]int
	ForcedRelicIDs   map[item.ID]bool
	ForcedEpicIDs    map[item.ID]bool
}

func (o Occupancy) slotCount(s stats.Slot) int {
	if o.ForcedSlotCounts == nil {
		return 0
	}
	return o.ForcedSlotCounts[s]
}

// Valid reports whether pair is compatible with already-forced
// occupancy (spec.md §4.6's "same slot, must be left_hand" rule).
func Valid(p Pair, occ Occupancy) bool {
	if p.Relic != nil && p.Epic != nil && p.Relic.Slot == p.Epic.Slot {
		if p.Relic.Slot != stats.LeftHand {
			return false
		}
		k := 0
		if !occ.ForcedRelicIDs[p.Relic.ID] {
			k++
		}
		if !occ.ForcedEpicIDs[p.Epic.ID] {
			k++
		}
		if 2-occ.slotCount(stats.LeftHand) < k {
			return false
		}
		return true
	}

	for _, it := range []*item.Item{p.Relic, p.Epic} {
		if it == nil {
			continue
		}
		if occ.ForcedRelicIDs[it.ID] || occ.ForcedEpicIDs[it.ID] {
			continue
		}
		slotMax := 0
		if it.Slot == stats.LeftHand {
			slotMax = 1
		}
		if occ.slotCount(it.Slot) > slotMax {
			return false
		}
	}
	return true
}

// Enumerate builds the cross product of relics × epics (each allowing
// the "none" option) plus the nation pairs, filtered to valid
// combinations.
func Enumerate(relics, epics []item.Item, nationPairs []Pair, occ Occupancy) []Pair {
	var out []Pair

	relicOpts := append([]*item.Item{nil}, toPointers(relics)...)
	epicOpts := append([]*item.Item{nil}, toPointers(epics)...)

	for _, r := range relicOpts {
		for _, e := range epicOpts {
			p := Pair{Relic: r, Epic: e}
			if Valid(p, occ) {
				out = append(out, p)
			}
		}
	}
	for _, p := range nationPairs {
		if Valid(p, occ) {
			out = append(out, p)
		}
	}
	return out
}

func toPointers(items []item.Item) []*item.Item {
	out := make([]*item.Item, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// DedupeKey is spec.md §4.6's pair dedup key: the joined slot string,
// disables_second_weapon, and the pair's combined ap/mp/ra/wp.
type DedupeKey struct {
	Slots                string
	DisablesSecondWeapon bool
	AP, MP, RA, WP       int
}

func keyFor(p Pair) DedupeKey {
	combined := stats.Stats{}
	var slots []string
	disables := false
	for _, it := range []*item.Item{p.Relic, p.Epic} {
		if it == nil {
			continue
		}
		combined = combined.Add(it.Attributes)
		slots = append(slots, string(it.Slot))
		if it.DisablesSecondWeapon {
			disables = true
		}
	}
	sort.Strings(slots)
	joined := ""
	for i, s := range slots {
		if i > 0 {
			joined += "-"
		}
		joined += s
	}
	return DedupeKey{
		Slots: joined, DisablesSecondWeapon: disables,
		AP: combined.AP, MP: combined.MP, RA: combined.RA, WP: combined.WP,
	}
}

// Distribution is a slot's crit_score_key normal distribution, used to
// z-score-standardize a pair's contribution so one "great but unrelated"
// item doesn't dominate naive sums (spec.md §4.6).
type Distribution struct {
	Mean   float64
	StdDev float64
}

// NewDistribution fits a Distribution from a slot's crit_score_key
// samples. Returns (Distribution{}, false) when fewer than two samples
// are available (matching NormalDist.from_samples' minimum).
func NewDistribution(values []float64) (Distribution, bool) {
	if len(values) < 2 {
		return Distribution{}, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(len(values)-1)
	return Distribution{Mean: mean, StdDev: math.Sqrt(variance)}, true
}

// ZScore standardizes v against the distribution. Returns (0, false) if
// the distribution has zero variance (statistics.StatisticsError in the
// original).
func (d Distribution) ZScore(v float64) (float64, bool) {
	if d.StdDev == 0 {
		return 0, false
	}
	return (v - d.Mean) / d.StdDev, true
}

// Distributions bundles the per-slot crit_score_key distributions the
// ranking needs, keyed by slot (weapon slots use the one-hander/
// two-hander/off-hand split instead of a single FIRST_WEAPON/
// SECOND_WEAPON bucket, matching solver.py's ONEH/TWOH/OFF_HAND split).
type Distributions struct {
	BySlot            map[stats.Slot]Distribution
	OneHanded         Distribution
	OneHandedOK       bool
	TwoHanded         Distribution
	TwoHandedOK       bool
	OffHand           Distribution
	OffHandOK         bool
}

func (d Distributions) forItem(it item.Item, disablesSecondWeapon bool) (Distribution, bool) {
	switch it.Slot {
	case stats.FirstWeapon:
		if disablesSecondWeapon {
			return d.TwoHanded, d.TwoHandedOK
		}
		return d.OneHanded, d.OneHandedOK
	case stats.SecondWeapon:
		return d.OffHand, d.OffHandOK
	default:
		dist, ok := d.BySlot[it.Slot]
		return dist, ok
	}
}

// RankKey is the (unknown_penalty, z_score_sum, raw_score_sum) tuple
// pairs are ranked by, descending (spec.md §4.6).
type RankKey struct {
	UnknownPenalty int
	ZScoreSum      float64
	RawScoreSum    float64
}

// Less orders RankKeys so that the "best" (to sort descending) compares
// greater: fewer unknown penalties first, then higher z-score sum, then
// higher raw score sum.
func (k RankKey) Less(o RankKey) bool {
	if k.UnknownPenalty != o.UnknownPenalty {
		return k.UnknownPenalty < o.UnknownPenalty
	}
	if k.ZScoreSum != o.ZScoreSum {
		return k.ZScoreSum < o.ZScoreSum
	}
	return k.RawScoreSum < o.RawScoreSum
}

// ScoreKey computes a pair's RankKey, given priority/class/options and
// base critical hit for crit_score_key.
func ScoreKey(p Pair, dists Distributions, sp stats.StatPriority, class stats.Class, opts score.Options, baseCrit int) RankKey {
	var key RankKey
	for _, it := range []*item.Item{p.Relic, p.Epic} {
		if it == nil {
			continue
		}
		cs := score.CritScoreKey(it.AsStats(), sp, class, opts, baseCrit)
		key.RawScoreSum += cs

		dist, ok := dists.forItem(*it, it.DisablesSecondWeapon)
		if !ok {
			key.UnknownPenalty = -1
			continue
		}
		z, ok := dist.ZScore(cs)
		if !ok {
			key.UnknownPenalty = -1
			continue
		}
		key.ZScoreSum += z
	}
	return key
}

// RankAndDedupe sorts pairs by ScoreKey descending, then dedupes by
// DedupeKey keeping the highest-ranked representative per key, mirroring
// solver.py's two-pass sort/ordered_keep_by_key/re-sort sequence.
func RankAndDedupe(candidates []Pair, dists Distributions, sp stats.StatPriority, class stats.Class, opts score.Options, baseCrit int) []Pair {
	keys := make(map[int]RankKey, len(candidates))
	ranked := make([]Pair, len(candidates))
	copy(ranked, candidates)
	for i, p := range ranked {
		keys[i] = ScoreKey(p, dists, sp, class, opts, baseCrit)
	}
	// Stash original indices so both sorts can look up the same key.
	idx := make([]int, len(ranked))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[b]].Less(keys[idx[a]])
	})
	sortedPairs := make([]Pair, len(idx))
	for i, orig := range idx {
		sortedPairs[i] = ranked[orig]
	}

	seen := map[DedupeKey]bool{}
	var deduped []Pair
	for _, p := range sortedPairs {
		k := keyFor(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// TruncateToHardCap keeps the top hardCap pairs, in adaptive (non-
// exhaustive) mode only.
func TruncateToHardCap(ranked []Pair, hardCap int, exhaustive bool) []Pair {
	if exhaustive || hardCap <= 0 || hardCap >= len(ranked) {
		return ranked
	}
	return ranked[:hardCap]
}
