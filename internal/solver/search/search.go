// Package search implements the Cartesian-product search kernel (spec.md
// §4.7): for a single (relic, epic) pair, iterate every combination of
// remaining-slot candidates, check global and item-conditional bounds, and
// maintain a per-pair top-K by score. SolveAll fans the kernel out across
// pairs via golang.org/x/sync/errgroup, the same data-parallel fork/join
// shape rgonzalez12-dbd-analytics's parallel_fetcher.go uses for concurrent
// fetch+aggregate (spec.md §5).
package search

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/itemdata"
	"github.com/relicware/gearsolve/internal/solver/pairs"
	"github.com/relicware/gearsolve/internal/solver/pool"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/stats"
	"github.com/relicware/gearsolve/internal/solver/telemetry"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

// coreSlots is the closed 13-slot set named in spec.md §3 (first_weapon,
// second_weapon, head, chest, legs, belt, back, shoulders, neck, left_hand,
// accessory, mount, pet). stats.Slot also carries costume for catalog
// completeness, but costume sits outside this closed set, so the search
// kernel never tries to fill it.
var coreSlots = []stats.Slot{
	stats.FirstWeapon, stats.SecondWeapon, stats.Head, stats.Chest, stats.Legs,
	stats.Belt, stats.Back, stats.Shoulders, stats.Neck, stats.LeftHand,
	stats.Accessory, stats.Mount, stats.Pet,
}

// Pools bundles the per-slot candidate pools the search kernel draws from,
// already filtered/ranked/deduped/trimmed by the pool builder (spec.md
// §4.5). Weapon slots are split out because which branch applies depends
// on which weapon slot (if any) a pair's forced occupancy already fills.
type Pools struct {
	BySlot     map[stats.Slot][]item.Item // every slot except first/second weapon and left_hand
	LeftHand   []item.Item
	OneHanders []item.Item
	TwoHanders []item.Item
	Daggers    []item.Item
	Shields    []item.Item
}

// Context bundles everything SolvePair needs that stays constant across
// every (relic, epic) pair in a single solve call.
type Context struct {
	Config    config.SolveConfig
	BaseStats stats.Stats // character base stats, with ApplyBasePassives already folded in
	Pools     Pools
	Forced    []item.Item // forced items, excluding the relic/epic themselves
	Options   score.Options
}

// option is one virtual slot's list of candidate contributions; each
// contribution is itself zero or more items (a weapon-pair slot can
// contribute 0, 1, or 2 items; a left_hand slot can contribute 0, 1, or 2).
type option [][]item.Item

// SolvePair runs the full §4.7 kernel for one (relic, epic) pair and
// returns its local top-k results, score-descending.
func SolvePair(ctx Context, pair pairs.Pair, k int) []topk.Result {
	locked := lockedItems(ctx.Forced, pair)

	occSlots := map[stats.Slot]int{}
	anyDisables := false
	for _, it := range locked {
		occSlots[it.Slot]++
		if it.DisablesSecondWeapon {
			anyDisables = true
		}
	}

	virtualSlots := make([]option, 0, len(coreSlots))
	virtualSlots = append(virtualSlots, weaponBranch(ctx.Pools, occSlots, anyDisables, ctx.Config.SkipShields))
	virtualSlots = append(virtualSlots, leftHandCombinations(ctx.Pools.LeftHand, 2-occSlots[stats.LeftHand]))

	for _, slot := range remainingSlots(occSlots) {
		candidates := ctx.Pools.BySlot[slot]
		opt := make(option, len(candidates))
		for i, it := range candidates {
			opt[i] = []item.Item{it}
		}
		virtualSlots = append(virtualSlots, opt)
	}

	lockedStats := ctx.BaseStats
	for _, it := range locked {
		lockedStats = lockedStats.Add(it.AsStats())
	}

	result := topk.New(k)
	acc := make([]item.Item, 0, len(coreSlots))
	walk(ctx, locked, lockedStats, virtualSlots, 0, acc, result)
	return result.Results()
}

// walk recursively enumerates the Cartesian product of virtualSlots[idx:],
// evaluating each full combination once every slot has been assigned.
func walk(ctx Context, locked []item.Item, lockedStats stats.Stats, slots []option, idx int, acc []item.Item, result *topk.TopK) {
	if idx == len(slots) {
		evaluate(ctx, locked, acc, lockedStats, result)
		return
	}
	for _, contribution := range slots[idx] {
		before := len(acc)
		acc = append(acc, contribution...)
		walk(ctx, locked, lockedStats, slots, idx+1, acc, result)
		acc = acc[:before]
	}
}

// evaluate checks a single fully-assigned candidate set against spec.md
// §4.7 steps 4a-4d and, if it survives, scores and inserts it.
func evaluate(ctx Context, locked, acc []item.Item, lockedStats stats.Stats, result *topk.TopK) {
	total := lockedStats
	for _, it := range acc {
		total = total.Add(it.AsStats())
	}

	all := make([]item.Item, 0, len(locked)+len(acc))
	all = append(all, locked...)
	all = append(all, acc...)

	anyDisables := false
	for _, it := range all {
		if it.DisablesSecondWeapon {
			anyDisables = true
			break
		}
	}
	if anyDisables && ctx.Config.TwoHanded {
		total.AP += 2
		total.MP -= 2
	}

	if total.CriticalHit < -10 {
		return
	}

	mns := ctx.Config.SetMinimums
	mxs := ctx.Config.SetMaximums
	for _, it := range all {
		cond := itemdata.GetConditions(it.ID)
		mns = mns.And(cond.Mins)
		mxs = mxs.And(cond.Maxs)
	}
	if !stats.Within(mns, total, mxs) {
		return
	}

	scoring := score.ApplyStatlinePassives(total, ctx.Config.Level, ctx.Config.Class, ctx.Config.ActivePassives, total.CriticalHit)
	adjusted, fdMod := score.NeutralityFDMod(scoring, ctx.Config.ActiveSublimations)
	if ctx.Config.Tuning.ElementalismAware {
		adjusted = score.ElementalismFDAndHealBonus(adjusted)
	}

	opts := ctx.Options
	opts.FDBonus += float64(fdMod) / 100

	sc := score.Score(adjusted, ctx.Config.Priority, ctx.Config.Class, opts)

	ids := make([]item.ID, 0, len(all))
	for _, it := range all {
		ids = append(ids, it.ID)
	}
	result.Insert(topk.NewResult(sc, ids))
}

// lockedItems combines forced items with whichever of the pair's
// relic/epic are present into the fixed, already-equipped set for this
// branch of the search.
func lockedItems(forced []item.Item, pair pairs.Pair) []item.Item {
	out := make([]item.Item, 0, len(forced)+2)
	out = append(out, forced...)
	if pair.Relic != nil {
		out = append(out, *pair.Relic)
	}
	if pair.Epic != nil {
		out = append(out, *pair.Epic)
	}
	return out
}

// remainingSlots returns the core slots still needing an item, per spec.md
// §4.7 step 1: excludes the weapon slots and left_hand (handled
// separately), drops any slot already at capacity, and drops accessory
// entirely when nothing already occupies it (it is allowed to stay empty).
func remainingSlots(occSlots map[stats.Slot]int) []stats.Slot {
	var out []stats.Slot
	for _, s := range coreSlots {
		switch s {
		case stats.FirstWeapon, stats.SecondWeapon, stats.LeftHand:
			continue
		case stats.Accessory:
			if occSlots[s] == 0 {
				continue
			}
		}
		if occSlots[s] >= s.Cardinality() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// weaponBranch implements spec.md §4.7 step 2: which weapon candidates to
// enumerate depends on what forced/relic/epic occupancy already filled.
func weaponBranch(p Pools, occSlots map[stats.Slot]int, anyDisables bool, skipShields bool) option {
	firstLocked := occSlots[stats.FirstWeapon] > 0
	secondLocked := occSlots[stats.SecondWeapon] > 0

	switch {
	case firstLocked && anyDisables:
		// Main hand already holds a two-hander: both weapon slots are done.
		return option{{}}
	case firstLocked && secondLocked:
		return option{{}}
	case firstLocked && !secondLocked:
		offhands := offhandPool(p)
		out := make(option, 0, len(offhands)+1)
		for _, it := range offhands {
			out = append(out, []item.Item{it})
		}
		out = append(out, []item.Item{}) // second_weapon may also stay empty
		return out
	case secondLocked && !firstLocked:
		// A dagger or shield is already forced into the off hand: only
		// one-handers are compatible with the first_weapon slot now.
		out := make(option, 0, len(p.OneHanders))
		for _, it := range p.OneHanders {
			out = append(out, []item.Item{it})
		}
		return out
	default:
		weaponPairs := pool.AssembleWeaponPairs(p.OneHanders, p.TwoHanders, p.Daggers, p.Shields, skipShields)
		out := make(option, 0, len(weaponPairs))
		for _, wp := range weaponPairs {
			items := []item.Item{wp.FirstWeapon}
			if wp.SecondWeapon != nil {
				items = append(items, *wp.SecondWeapon)
			}
			out = append(out, items)
		}
		return out
	}
}

// offhandPool is the daggers-or-shields candidate list for the off hand
// when the main hand is already locked to a one-hander. skip_shields only
// drops the two-hander branch (spec.md §4.5), so shields always belong
// here.
func offhandPool(p Pools) []item.Item {
	out := make([]item.Item, 0, len(p.Daggers)+len(p.Shields))
	out = append(out, p.Daggers...)
	out = append(out, p.Shields...)
	return out
}

// leftHandCombinations returns spec.md §4.7 step 3's 2-combinations of the
// left_hand pool, sized to however many rings are still needed (need is 2
// minus whatever forced/relic/epic occupancy already filled). Pairs
// sharing a name are rejected per spec.md §3's distinct-names invariant.
func leftHandCombinations(poolItems []item.Item, need int) option {
	switch {
	case need <= 0:
		return option{{}}
	case need == 1:
		out := make(option, 0, len(poolItems))
		for _, it := range poolItems {
			out = append(out, []item.Item{it})
		}
		return out
	default:
		var out option
		for i := 0; i < len(poolItems); i++ {
			for j := i + 1; j < len(poolItems); j++ {
				if poolItems[i].Name == poolItems[j].Name {
					continue
				}
				out = append(out, []item.Item{poolItems[i], poolItems[j]})
			}
		}
		return out
	}
}

// SolveAll runs SolvePair for every candidate pair, parallelized across
// pairs via errgroup (spec.md §5's data-parallel fork/join), and merges
// the per-pair top-Ks into one global top-k. A canceled ctx stops
// dispatching new pairs cooperatively and returns whatever pairs already
// completed, rather than erroring out (spec.md §5: "returns the
// best-so-far").
func SolveAll(ctx context.Context, sctx Context, candidatePairs []pairs.Pair, k int, reporter telemetry.Reporter) []topk.Result {
	perPair := make([][]topk.Result, len(candidatePairs))
	var doneCount int32

	g, gctx := errgroup.WithContext(ctx)
	for i, pair := range candidatePairs {
		i, pair := i, pair
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			perPair[i] = SolvePair(sctx, pair, k)
			n := atomic.AddInt32(&doneCount, 1)
			reporter.PairProgress(int(n), len(candidatePairs))
			return nil
		})
	}
	_ = g.Wait()

	return topk.Merge(perPair, k)
}
