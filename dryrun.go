package gearsolve

import (
	"sort"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/pairs"
	"github.com/relicware/gearsolve/internal/solver/search"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

// dryRunResult builds the single pseudo-result a dry run returns: the
// deduplicated union of every item that could possibly appear in a set
// (forced items, every candidate pair's relic/epic, and every per-slot
// pool), score zero since no set was ever assembled or scored.
func dryRunResult(forced []item.Item, candidatePairs []pairs.Pair, pools search.Pools) topk.Result {
	seen := map[item.ID]bool{}
	add := func(it item.Item) {
		seen[it.ID] = true
	}
	addAll := func(items []item.Item) {
		for _, it := range items {
			add(it)
		}
	}

	addAll(forced)
	for _, p := range candidatePairs {
		if p.Relic != nil {
			add(*p.Relic)
		}
		if p.Epic != nil {
			add(*p.Epic)
		}
	}
	for _, items := range pools.BySlot {
		addAll(items)
	}
	addAll(pools.LeftHand)
	addAll(pools.OneHanders)
	addAll(pools.TwoHanders)
	addAll(pools.Daggers)
	addAll(pools.Shields)

	ids := make([]item.ID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return topk.NewResult(0, ids)
}
