package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/pairs"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/stats"
	"github.com/relicware/gearsolve/internal/solver/telemetry"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

func baseConfig() config.SolveConfig {
	return config.SolveConfig{
		Level:           100,
		SetMinimums:     stats.NewSetMinimums(),
		SetMaximums:     stats.NewSetMaximums(),
		Priority:        stats.DefaultStatPriority(),
		Class:           stats.Iop,
		Tuning:          config.DefaultTuning(),
		AllowedRarities: []stats.Rarity{stats.Common, stats.Legendary, stats.Relic, stats.Epic},
	}
}

func minimalPools() Pools {
	return Pools{
		BySlot: map[stats.Slot][]item.Item{
			stats.Head:      {{ID: 10, Name: "Head A", Slot: stats.Head, Attributes: stats.Stats{AP: 1}}},
			stats.Chest:     {{ID: 11, Name: "Chest A", Slot: stats.Chest}},
			stats.Legs:      {{ID: 12, Name: "Legs A", Slot: stats.Legs}},
			stats.Belt:      {{ID: 13, Name: "Belt A", Slot: stats.Belt}},
			stats.Back:      {{ID: 14, Name: "Back A", Slot: stats.Back}},
			stats.Shoulders: {{ID: 15, Name: "Shoulders A", Slot: stats.Shoulders}},
			stats.Neck:      {{ID: 16, Name: "Neck A", Slot: stats.Neck}},
			stats.Mount:     {{ID: 17, Name: "Mount A", Slot: stats.Mount}},
			stats.Pet:       {{ID: 18, Name: "Pet A", Slot: stats.Pet}},
		},
		LeftHand: []item.Item{
			{ID: 20, Name: "Ring A", Slot: stats.LeftHand, Attributes: stats.Stats{MP: 1}},
			{ID: 21, Name: "Ring B", Slot: stats.LeftHand},
		},
		OneHanders: []item.Item{
			{ID: 30, Name: "Sword A", Slot: stats.FirstWeapon, Attributes: stats.Stats{AP: 1}},
		},
		Daggers: []item.Item{
			{ID: 40, Name: "Dagger A", Slot: stats.SecondWeapon, TypeID: item.TypeDagger},
		},
	}
}

func minimalContext() Context {
	return Context{
		Config:  baseConfig(),
		Pools:   minimalPools(),
		Options: score.Options{},
	}
}

func TestSolvePairFillsEveryNonOptionalSlot(t *testing.T) {
	ctx := minimalContext()
	results := SolvePair(ctx, pairs.Pair{}, 5)
	require.NotEmpty(t, results)

	// 9 non-weapon slots + 2 weapon slots + 2 rings = 13 items, the full
	// non-accessory core set.
	assert.Len(t, results[0].Items, 13)
}

func TestSolvePairRespectsLeftHandDistinctNameRule(t *testing.T) {
	pools := minimalPools()
	pools.LeftHand = []item.Item{
		{ID: 20, Name: "Same Ring", Slot: stats.LeftHand},
		{ID: 21, Name: "Same Ring", Slot: stats.LeftHand},
		{ID: 22, Name: "Different Ring", Slot: stats.LeftHand},
	}
	ctx := minimalContext()
	ctx.Pools = pools

	results := SolvePair(ctx, pairs.Pair{}, 5)
	require.NotEmpty(t, results, "a valid (20,22) or (21,22) combination must still be found")
	for _, r := range results {
		count := 0
		for _, id := range r.Items {
			if id == 20 || id == 21 {
				count++
			}
		}
		assert.NotEqual(t, 2, count, "identically-named rings must never both appear")
	}
}

func TestSolvePairRejectsCriticalHitBelowNegativeTen(t *testing.T) {
	ctx := minimalContext()
	ctx.Pools.BySlot[stats.Head] = []item.Item{
		{ID: 10, Name: "Cursed Helm", Slot: stats.Head, Attributes: stats.Stats{CriticalHit: -50}},
	}
	results := SolvePair(ctx, pairs.Pair{}, 5)
	assert.Empty(t, results, "a set whose critical_hit drops below -10 must never be returned")
}

func TestSolvePairEnforcesRequestedMinimums(t *testing.T) {
	ctx := minimalContext()
	// A second, AP-less Head candidate gives the search a real choice: only
	// sets keeping Head A (+1 ap) alongside Sword A (+1 ap) reach the
	// minimum.
	ctx.Pools.BySlot[stats.Head] = append(ctx.Pools.BySlot[stats.Head],
		item.Item{ID: 19, Name: "Head B", Slot: stats.Head})
	ctx.Config.SetMinimums.AP = 2

	results := SolvePair(ctx, pairs.Pair{}, 5)
	require.NotEmpty(t, results)
	for _, r := range results {
		hasHead, hasSword := false, false
		for _, id := range r.Items {
			if id == 10 {
				hasHead = true
			}
			if id == 30 {
				hasSword = true
			}
		}
		assert.True(t, hasHead && hasSword)
	}
}

func TestSolvePairForcedItemsAlwaysPresent(t *testing.T) {
	ctx := minimalContext()
	ctx.Forced = []item.Item{{ID: 16, Name: "Forced Neck", Slot: stats.Neck}}
	ctx.Pools.BySlot[stats.Neck] = []item.Item{{ID: 9999, Name: "Unused Neck", Slot: stats.Neck}}

	results := SolvePair(ctx, pairs.Pair{}, 5)
	require.NotEmpty(t, results)
	for _, r := range results {
		found := false
		for _, id := range r.Items {
			if id == 16 {
				found = true
			}
		}
		assert.True(t, found, "forced item must appear in every returned set")
	}
}

func TestSolvePairTwoHandedTransformAdjustsAPAndMP(t *testing.T) {
	pools := minimalPools()
	pools.TwoHanders = []item.Item{{ID: 31, Name: "Greataxe", Slot: stats.FirstWeapon, DisablesSecondWeapon: true}}
	pools.OneHanders = nil
	pools.Daggers = nil

	ctx := minimalContext()
	ctx.Pools = pools
	ctx.Config.TwoHanded = true
	ctx.Config.SetMinimums.AP = 2 // only satisfiable once the +2 ap transform applies

	results := SolvePair(ctx, pairs.Pair{}, 5)
	require.NotEmpty(t, results)
}

func TestSolvePairUsesRelicAndEpicFromPair(t *testing.T) {
	relic := item.Item{ID: 500, Name: "Relic Neck", Slot: stats.Neck, Rarity: stats.Relic}
	epic := item.Item{ID: 501, Name: "Epic Back", Slot: stats.Back, Rarity: stats.Epic}
	pair := pairs.Pair{Relic: &relic, Epic: &epic}

	ctx := minimalContext()
	results := SolvePair(ctx, pair, 5)
	require.NotEmpty(t, results)
	for _, r := range results {
		hasRelic, hasEpic := false, false
		for _, id := range r.Items {
			if id == 500 {
				hasRelic = true
			}
			if id == 501 {
				hasEpic = true
			}
		}
		assert.True(t, hasRelic && hasEpic)
	}
}

func TestSolveAllMatchesSequentialMerge(t *testing.T) {
	ctx := minimalContext()
	relic := item.Item{ID: 500, Name: "Relic Neck", Slot: stats.Neck, Rarity: stats.Relic}
	candidatePairs := []pairs.Pair{{}, {Relic: &relic}}

	logger := zap.NewNop()
	reporter := telemetry.NewReporter(logger, nil)

	parallel := SolveAll(context.Background(), ctx, candidatePairs, 5, reporter)

	perPair := make([][]topk.Result, len(candidatePairs))
	for i, p := range candidatePairs {
		perPair[i] = SolvePair(ctx, p, 5)
	}
	sequential := topk.Merge(perPair, 5)

	require.NotEmpty(t, parallel)
	require.Equal(t, len(sequential), len(parallel))
	for i := range sequential {
		assert.Equal(t, sequential[i].Score, parallel[i].Score)
		assert.Equal(t, sequential[i].Items, parallel[i].Items)
	}
}
