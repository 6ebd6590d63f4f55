package gearsolve

import (
	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/feasibility"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/pairs"
	"github.com/relicware/gearsolve/internal/solver/pool"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/search"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// rareItemPool filters the full catalog down to items of the given rarity
// (Relic or Epic), the pair enumerator's own selection pool (spec.md
// §4.6) rather than an ordinary per-slot bucket.
func rareItemPool(rarity stats.Rarity, cfg config.SolveConfig, catalog []item.Item, slack bool) []item.Item {
	if !cfg.AllowsRarity(rarity) {
		return nil
	}
	f := pool.Filter{
		Level:             cfg.Level,
		LowBound:          cfg.LowBound(),
		AllowedRarities:   []stats.Rarity{rarity},
		ForbiddenIDs:      forbiddenIDSet(cfg.ForbiddenItemIDs),
		ForbiddenNames:    forbiddenNameSet(cfg.ForbiddenNames),
		FindableAPMPSlack: slack,
	}
	var out []item.Item
	for _, it := range catalog {
		if it.Rarity != rarity {
			continue
		}
		if pool.InitialFilter(it, f) {
			out = append(out, it)
		}
	}
	return out
}

func samplesDistribution(items []item.Item, sp stats.StatPriority, class stats.Class, opts score.Options, baseCrit int) (pairs.Distribution, bool) {
	values := make([]float64, len(items))
	for i, it := range items {
		values[i] = score.CritScoreKey(it.AsStats(), sp, class, opts, baseCrit)
	}
	return pairs.NewDistribution(values)
}

// buildDistributions fits the per-slot crit_score_key distributions the
// pair ranker needs to z-score-standardize a relic or epic's contribution
// against its slot's peers (spec.md §4.6).
func buildDistributions(p search.Pools, sp stats.StatPriority, class stats.Class, opts score.Options, baseCrit int) pairs.Distributions {
	dists := pairs.Distributions{BySlot: map[stats.Slot]pairs.Distribution{}}
	for slot, items := range p.BySlot {
		if d, ok := samplesDistribution(items, sp, class, opts, baseCrit); ok {
			dists.BySlot[slot] = d
		}
	}
	if d, ok := samplesDistribution(p.LeftHand, sp, class, opts, baseCrit); ok {
		dists.BySlot[stats.LeftHand] = d
	}
	if d, ok := samplesDistribution(p.OneHanders, sp, class, opts, baseCrit); ok {
		dists.OneHanded, dists.OneHandedOK = d, true
	}
	if d, ok := samplesDistribution(p.TwoHanders, sp, class, opts, baseCrit); ok {
		dists.TwoHanded, dists.TwoHandedOK = d, true
	}
	offhand := make([]item.Item, 0, len(p.Daggers)+len(p.Shields))
	offhand = append(offhand, p.Daggers...)
	offhand = append(offhand, p.Shields...)
	if d, ok := samplesDistribution(offhand, sp, class, opts, baseCrit); ok {
		dists.OffHand, dists.OffHandOK = d, true
	}
	return dists
}

// forcedOccupancy summarizes forced items for both the feasibility
// reachability proofs and the pair enumerator's slot-collision check, so
// Solve only walks the forced list once.
type forcedOccupancy struct {
	feasibility feasibility.Occupancy
	pairs       pairs.Occupancy
	hasRelic    bool
	hasEpic     bool
}

func occupancyFor(forced []item.Item) forcedOccupancy {
	slotCounts := map[stats.Slot]int{}
	relicIDs := map[item.ID]bool{}
	epicIDs := map[item.ID]bool{}
	var out forcedOccupancy
	for _, it := range forced {
		out.feasibility.Stats = out.feasibility.Stats.Add(it.AsStats())
		slotCounts[it.Slot]++
		if it.DisablesSecondWeapon {
			out.feasibility.AnyDisablesSecondWeapon = true
		}
		if it.IsEpic() {
			out.feasibility.HasForcedEpic = true
			out.hasEpic = true
			epicIDs[it.ID] = true
		}
		if it.IsRelic() {
			out.feasibility.HasForcedRelic = true
			out.hasRelic = true
			relicIDs[it.ID] = true
			if it.Slot == stats.FirstWeapon {
				out.feasibility.HasForcedFirstWeaponRelic = true
			}
		}
	}
	out.feasibility.SlotCounts = slotCounts
	out.pairs = pairs.Occupancy{ForcedSlotCounts: slotCounts, ForcedRelicIDs: relicIDs, ForcedEpicIDs: epicIDs}
	return out
}

// buildCandidatePairs runs the relic/epic pair enumerator (spec.md §4.6):
// cross-product relics × epics plus nation pairs, filtered to valid
// combinations, ranked by z-score-normalized crit_score_key, deduped, and
// truncated to hard_cap_depth in adaptive mode.
func buildCandidatePairs(cfg config.SolveConfig, catalog []item.Item, byID map[item.ID]item.Item, pools search.Pools, forced []item.Item, baseStats stats.Stats, opts score.Options, slack bool) []pairs.Pair {
	occ := occupancyFor(forced)

	relicPool := rareItemPool(stats.Relic, cfg, catalog, slack)
	epicPool := rareItemPool(stats.Epic, cfg, catalog, slack)

	var nationPairs []pairs.Pair
	if !occ.hasRelic && !occ.hasEpic && cfg.Level >= 200 {
		nationPairs = pairs.NationPairs(byID)
	}

	candidates := pairs.Enumerate(relicPool, epicPool, nationPairs, occ.pairs)

	dists := buildDistributions(pools, cfg.Priority, cfg.Class, opts, baseStats.CriticalHit)
	ranked := pairs.RankAndDedupe(candidates, dists, cfg.Priority, cfg.Class, opts, baseStats.CriticalHit)

	exhaustive := cfg.Exhaustive || cfg.Tuning.Exhaustive
	return pairs.TruncateToHardCap(ranked, cfg.Tuning.HardCapDepth, exhaustive)
}
