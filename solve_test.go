package gearsolve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/stats"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

// allRarities is the full 1..7 rarity range spec.md §8's scenarios name.
var allRarities = []stats.Rarity{
	stats.Common, stats.Uncommon, stats.Mythic, stats.Legendary,
	stats.Relic, stats.Souvenir, stats.Epic,
}

func ordinaryItem(id item.ID, slot stats.Slot, level int, rarity stats.Rarity, s stats.Stats) item.Item {
	return item.Item{ID: id, Name: fmt.Sprintf("test item %d", id), Slot: slot, Level: level, Rarity: rarity, Attributes: s}
}

// denseCatalogAtLevel builds a catalog with generous stat contributions in
// every core slot across every rarity, plus a two-hander, a dagger, and a
// shield, all at the given item level, so every scenario's stat minimums
// are reachable by the search kernel itself rather than only by the
// feasibility analyzer's abstract tables. Every item sits at exactly
// level so it clears a config's equip window regardless of where that
// window's low bound falls.
func denseCatalogAtLevel(level int) []item.Item {
	var catalog []item.Item
	id := item.ID(1)
	next := func() item.ID {
		id++
		return id
	}

	ordinarySlots := []stats.Slot{
		stats.Head, stats.Chest, stats.Legs, stats.Belt, stats.Back,
		stats.Shoulders, stats.Neck, stats.Accessory, stats.Mount, stats.Pet,
	}
	for _, slot := range ordinarySlots {
		for _, rarity := range allRarities {
			catalog = append(catalog, ordinaryItem(next(), slot, level, rarity, stats.Stats{
				AP: 1, MP: 1, WP: 2, RA: 1,
				DistanceMastery: 200, FireMastery: 100,
				WaterMastery: 80, AirMastery: 80, EarthMastery: 80,
				Mastery1Element: 50, Mastery2Elements: 30, Mastery3Elements: 20,
			}))
		}
	}

	for _, rarity := range allRarities {
		catalog = append(catalog, ordinaryItem(next(), stats.LeftHand, level, rarity, stats.Stats{
			AP: 1, RA: 1, WP: 1, DistanceMastery: 150,
		}))
		catalog = append(catalog, ordinaryItem(next(), stats.LeftHand, level, rarity, stats.Stats{
			AP: 1, RA: 1, WP: 1, DistanceMastery: 150,
		}))
	}

	for _, rarity := range allRarities {
		oneHander := ordinaryItem(next(), stats.FirstWeapon, level, rarity, stats.Stats{
			AP: 2, WP: 2, RA: 1, DistanceMastery: 300,
		})
		catalog = append(catalog, oneHander)

		twoHander := ordinaryItem(next(), stats.FirstWeapon, level, rarity, stats.Stats{
			AP: 2, MP: 2, WP: 4, RA: 2, DistanceMastery: 500,
		})
		twoHander.DisablesSecondWeapon = true
		catalog = append(catalog, twoHander)
	}

	for _, rarity := range allRarities {
		dagger := ordinaryItem(next(), stats.SecondWeapon, level, rarity, stats.Stats{
			AP: 1, WP: 2, DistanceMastery: 100,
		})
		dagger.TypeID = item.TypeDagger
		catalog = append(catalog, dagger)

		shield := ordinaryItem(next(), stats.SecondWeapon, level, rarity, stats.Stats{
			MP: 1, RA: 1,
		})
		shield.TypeID = item.TypeShield
		catalog = append(catalog, shield)
	}

	return catalog
}

// denseCatalog is denseCatalogAtLevel at the level-230 cap most scenarios
// run at.
func denseCatalog() []item.Item {
	return denseCatalogAtLevel(230)
}

// baseCfg's BaseStats carries a modest non-zero AP/MP line: spec.md §8's
// scenarios state their set minimums as totals a character reaches on top
// of class/stuff-independent base stats, not as literal floor values the
// equipment alone must supply.
func baseCfg() config.SolveConfig {
	return config.SolveConfig{
		Level:           230,
		BaseStats:       stats.Stats{AP: 6, MP: 3},
		SetMinimums:     stats.NewSetMinimums(),
		SetMaximums:     stats.NewSetMaximums(),
		Priority:        stats.DefaultStatPriority(),
		Class:           stats.Iop,
		Tuning:          config.DefaultTuning(),
		AllowedRarities: allRarities,
	}
}

func TestSolveScenario1HighAPMPWP(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 12
	cfg.SetMinimums.MP = 6
	cfg.SetMinimums.WP = 8
	cfg.SetMinimums.RA = 0
	cfg.Priority.Rear = true
	cfg.Priority.NegRear = stats.NegFull
	cfg.Priority.Elements = stats.Fire

	result, err := Solve(context.Background(), cfg, denseCatalog())
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
}

func TestSolveScenario2DistanceBuild(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 13
	cfg.SetMinimums.MP = 5
	cfg.SetMinimums.WP = 4
	cfg.SetMinimums.RA = 2
	cfg.AllowedRarities = []stats.Rarity{stats.Legendary, stats.Relic, stats.Souvenir, stats.Epic}
	cfg.Priority.Distance = true
	cfg.Priority.Elements = stats.Water | stats.Air | stats.Earth

	catalog := denseCatalog()
	result, err := Solve(context.Background(), cfg, catalog)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
	for _, set := range result.Sets {
		total := sumAttributes(set, catalog)
		assert.Greater(t, total.DistanceMastery, 0)
	}
}

func TestSolveScenario3FireRearDistance(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 6
	cfg.SetMinimums.MP = 5
	cfg.SetMinimums.WP = 8
	cfg.SetMinimums.RA = 2
	cfg.Priority.Distance = true
	cfg.Priority.Rear = true
	cfg.Priority.NegRear = stats.NegFull
	cfg.Priority.Elements = stats.Fire

	result, err := Solve(context.Background(), cfg, denseCatalog())
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
}

func TestSolveScenario4LowLevelAPMPInfeasible(t *testing.T) {
	cfg := baseCfg()
	cfg.Level = 20
	cfg.SetMinimums.AP = 12
	cfg.SetMinimums.MP = 6
	cfg.SetMinimums.WP = 0
	cfg.SetMinimums.RA = 0

	_, err := Solve(context.Background(), cfg, denseCatalog())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
}

func TestSolveScenario5ForcedTwoHanderAndDaggerInfeasible(t *testing.T) {
	catalog := denseCatalog()
	var twoHander, dagger item.Item
	for _, it := range catalog {
		if it.Slot == stats.FirstWeapon && it.DisablesSecondWeapon {
			twoHander = it
		}
		if it.Slot == stats.SecondWeapon && it.IsDagger() {
			dagger = it
		}
	}
	require.NotZero(t, twoHander.ID)
	require.NotZero(t, dagger.ID)

	cfg := baseCfg()
	cfg.SetMinimums.AP = 6
	cfg.SetMinimums.MP = 2
	cfg.ForcedItemIDs = []int{int(twoHander.ID), int(dagger.ID)}

	_, err := Solve(context.Background(), cfg, catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
}

func TestSolveScenario6XelorMemoryPassive(t *testing.T) {
	cfg := baseCfg()
	cfg.Level = 50
	cfg.SetMinimums.AP = 2
	cfg.SetMinimums.MP = 1
	cfg.SetMinimums.WP = 0
	cfg.SetMinimums.RA = 0
	cfg.Class = stats.Xelor
	cfg.ActivePassives = []int{score.PassiveMemory}

	result, err := Solve(context.Background(), cfg, denseCatalogAtLevel(50))
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
}

// sumAttributes re-derives the combined attribute line for a returned
// result's items, for scenario assertions that check a specific stat
// beyond pass/fail (e.g. scenario 2's distance_mastery > 0 requirement).
func sumAttributes(r topk.Result, catalog []item.Item) stats.Stats {
	byID := make(map[item.ID]item.Item, len(catalog))
	for _, it := range catalog {
		byID[it.ID] = it
	}
	var total stats.Stats
	for _, id := range r.Items {
		total = total.Add(byID[id].Attributes)
	}
	return total
}

func TestSolveIdempotent(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 6
	cfg.SetMinimums.MP = 2
	catalog := denseCatalog()

	a, err := Solve(context.Background(), cfg, catalog)
	require.NoError(t, err)
	b, err := Solve(context.Background(), cfg, catalog)
	require.NoError(t, err)

	require.Equal(t, len(a.Sets), len(b.Sets))
	for i := range a.Sets {
		assert.Equal(t, a.Sets[i].Score, b.Sets[i].Score)
		assert.Equal(t, a.Sets[i].Items, b.Sets[i].Items)
	}
}

func TestSolveForcedSubsetAppearsInEverySet(t *testing.T) {
	catalog := denseCatalog()
	var forcedItem item.Item
	for _, it := range catalog {
		if it.Slot == stats.Head && it.Rarity == stats.Common {
			forcedItem = it
			break
		}
	}
	require.NotZero(t, forcedItem.ID)

	cfg := baseCfg()
	cfg.SetMinimums.AP = 4
	cfg.SetMinimums.MP = 2
	cfg.ForcedItemIDs = []int{int(forcedItem.ID)}

	result, err := Solve(context.Background(), cfg, catalog)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
	for _, set := range result.Sets {
		assert.Contains(t, set.Items, forcedItem.ID)
	}
}

func TestSolveForbiddenDisjointFromEverySet(t *testing.T) {
	catalog := denseCatalog()
	var forbidden item.Item
	for _, it := range catalog {
		if it.Slot == stats.Chest && it.Rarity == stats.Common {
			forbidden = it
			break
		}
	}
	require.NotZero(t, forbidden.ID)

	cfg := baseCfg()
	cfg.SetMinimums.AP = 4
	cfg.SetMinimums.MP = 2
	cfg.ForbiddenItemIDs = []int{int(forbidden.ID)}

	result, err := Solve(context.Background(), cfg, catalog)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sets)
	for _, set := range result.Sets {
		assert.NotContains(t, set.Items, forbidden.ID)
	}
}

func TestSolveConfigErrorOnInvalidLevel(t *testing.T) {
	cfg := baseCfg()
	cfg.Level = 999

	_, err := Solve(context.Background(), cfg, denseCatalog())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigError))
}

func TestSolveDryRunReturnsSingleUnrankedResult(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 6
	cfg.SetMinimums.MP = 2
	cfg.DryRun = true

	result, err := Solve(context.Background(), cfg, denseCatalog())
	require.NoError(t, err)
	require.Len(t, result.Sets, 1)
	assert.Equal(t, float64(0), result.Sets[0].Score)
	assert.NotEmpty(t, result.Sets[0].Items)
}

func TestSolveNoSolutionWhenPoolExhausted(t *testing.T) {
	cfg := baseCfg()
	cfg.SetMinimums.AP = 6
	cfg.SetMinimums.MP = 2

	_, err := Solve(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSolution))
}
