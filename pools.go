package gearsolve

import (
	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/pool"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/search"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// nonRarePoolSlots are the ordinary slots the pool builder buckets
// directly. left_hand, first_weapon, and second_weapon are built
// separately (different cardinality/pairing rules); relic and epic are
// never drawn from here since at most one of each is allowed per set and
// the pair enumerator owns their selection (spec.md §4.5, §4.6).
var nonRarePoolSlots = []stats.Slot{
	stats.Head, stats.Chest, stats.Legs, stats.Belt, stats.Back,
	stats.Shoulders, stats.Neck, stats.Accessory, stats.Mount, stats.Pet,
}

// withoutRareRarities strips Relic and Epic from an allowed-rarity list,
// used for every ordinary-slot pool so a relic or epic item is never
// drawn into a set except through the pair enumerator.
func withoutRareRarities(allowed []stats.Rarity) []stats.Rarity {
	out := make([]stats.Rarity, 0, len(allowed))
	for _, r := range allowed {
		if r != stats.Relic && r != stats.Epic {
			out = append(out, r)
		}
	}
	return out
}

func hasPassiveID(passives []int, id int) bool {
	for _, p := range passives {
		if p == id {
			return true
		}
	}
	return false
}

// simKeyOptions selects which optional sim-key fields matter for this
// config (spec.md §4.5 step 4).
func simKeyOptions(cfg config.SolveConfig) pool.SimKeyOptions {
	return pool.SimKeyOptions{
		IncludeCriticalHit:     cfg.Unraveling || cfg.Class == stats.Ecaflip,
		IncludeCriticalMastery: cfg.Unraveling,
		IncludeBlock:           hasPassiveID(cfg.ActivePassives, score.PassiveBravery),
	}
}

func forbiddenIDSet(ids []int) map[item.ID]bool {
	out := make(map[item.ID]bool, len(ids))
	for _, id := range ids {
		out[item.ID(id)] = true
	}
	return out
}

func forbiddenNameSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// buildPools runs the pool builder (spec.md §4.5) over the full catalog,
// producing the per-slot candidate pools the search kernel draws from.
func buildPools(cfg config.SolveConfig, catalog []item.Item, baseStats stats.Stats, opts score.Options, slack bool) search.Pools {
	simOpts := simKeyOptions(cfg)
	baseCrit := baseStats.CriticalHit
	ordinaryRarities := withoutRareRarities(cfg.AllowedRarities)

	// Mount and pet skip the rarity filter, so relic and epic items are
	// also removed from the catalog the ordinary pools are built from.
	ordinary := make([]item.Item, 0, len(catalog))
	for _, it := range catalog {
		if !it.IsRelic() && !it.IsEpic() {
			ordinary = append(ordinary, it)
		}
	}

	filter := pool.Filter{
		Level:             cfg.Level,
		LowBound:          cfg.LowBound(),
		AllowedRarities:   ordinaryRarities,
		ForbiddenIDs:      forbiddenIDSet(cfg.ForbiddenItemIDs),
		ForbiddenNames:    forbiddenNameSet(cfg.ForbiddenNames),
		FindableAPMPSlack: slack,
	}

	pools := search.Pools{BySlot: map[stats.Slot][]item.Item{}}
	for _, slot := range nonRarePoolSlots {
		bucket := pool.BuildBucket(slot, ordinary, filter, cfg.Priority, cfg.Class, opts, baseCrit, simOpts, cfg.Tuning)
		pools.BySlot[slot] = bucket.Items
	}

	leftHand := pool.BuildBucket(stats.LeftHand, ordinary, filter, cfg.Priority, cfg.Class, opts, baseCrit, simOpts, cfg.Tuning)
	pools.LeftHand = leftHand.Items

	firstWeapon := pool.BuildBucket(stats.FirstWeapon, ordinary, filter, cfg.Priority, cfg.Class, opts, baseCrit, simOpts, cfg.Tuning)
	pools.OneHanders, pools.TwoHanders = pool.SplitFirstWeapons(firstWeapon.Items)

	secondWeapon := pool.BuildBucket(stats.SecondWeapon, ordinary, filter, cfg.Priority, cfg.Class, opts, baseCrit, simOpts, cfg.Tuning)
	pools.Daggers, pools.Shields = pool.SplitSecondWeapons(secondWeapon.Items)

	if cfg.UseLightWeaponExpert {
		pools.Daggers = append(pools.Daggers, pool.LightWeaponExpertDagger(cfg.Level))
	}
	if dagger, ok := pool.SublimationDagger(cfg.Level, cfg.ActiveSublimations); ok {
		pools.Daggers = append(pools.Daggers, dagger)
	}

	return pools
}
