package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

func TestLightWeaponExpertDaggerFormula(t *testing.T) {
	d := LightWeaponExpertDagger(100)
	assert.Equal(t, 150, d.Attributes.ElementalMastery)
	assert.Equal(t, LightWeaponExpertDaggerID, d.ID)
	assert.True(t, d.IsDagger())
}

func TestSublimationDaggerMultiplierCapsAtSix(t *testing.T) {
	assert.Equal(t, 0, SublimationDaggerMultiplier(nil))
	assert.Equal(t, 3, SublimationDaggerMultiplier([]int{sublimationDaggerTier3}))
	assert.Equal(t, 6, SublimationDaggerMultiplier([]int{sublimationDaggerTier1, sublimationDaggerTier2, sublimationDaggerTier3}))
}

func TestSublimationDaggerAbsentWithoutSublimations(t *testing.T) {
	_, ok := SublimationDagger(100, nil)
	assert.False(t, ok)
}

func TestSublimationDaggerFormula(t *testing.T) {
	d, ok := SublimationDagger(200, []int{sublimationDaggerTier2, sublimationDaggerTier3})
	require.True(t, ok)
	// floor(200 * 0.25 * min(5,6)) = floor(250) = 250
	assert.Equal(t, 250, d.Attributes.ElementalMastery)
}

func TestInitialFilterRejectsForbiddenID(t *testing.T) {
	it := item.Item{ID: 5, Name: "X", Slot: stats.Neck, Level: 50, Rarity: stats.Legendary}
	f := Filter{
		Level: 100, LowBound: 1,
		AllowedRarities: []stats.Rarity{stats.Legendary},
		ForbiddenIDs:    map[item.ID]bool{5: true},
	}
	assert.False(t, InitialFilter(it, f))
}

func TestInitialFilterRejectsDisallowedRarity(t *testing.T) {
	it := item.Item{ID: 6, Name: "Y", Slot: stats.Neck, Level: 50, Rarity: stats.Epic}
	f := Filter{
		Level: 100, LowBound: 1,
		AllowedRarities: []stats.Rarity{stats.Legendary},
	}
	assert.False(t, InitialFilter(it, f))
}

func TestInitialFilterMountExemptFromRarity(t *testing.T) {
	it := item.Item{ID: 7, Name: "Z", Slot: stats.Mount, Level: 999, Rarity: stats.Epic}
	f := Filter{
		Level: 100, LowBound: 1,
		AllowedRarities: []stats.Rarity{stats.Legendary},
	}
	assert.True(t, InitialFilter(it, f))
}

func TestInitialFilterLevelWindow(t *testing.T) {
	it := item.Item{ID: 8, Name: "W", Slot: stats.Neck, Level: 30, Rarity: stats.Legendary}
	f := Filter{
		Level: 100, LowBound: 50,
		AllowedRarities: []stats.Rarity{stats.Legendary},
	}
	assert.False(t, InitialFilter(it, f))
}

func TestInitialFilterRelicEpicOverrideWindow(t *testing.T) {
	it := item.Item{ID: 9723, Name: "Gelano", Slot: stats.LeftHand, Level: 100, Rarity: stats.Epic}
	f := Filter{
		Level: 140, LowBound: 200, // ordinary window would reject this
		AllowedRarities: []stats.Rarity{stats.Epic},
	}
	assert.True(t, InitialFilter(it, f))
}

func TestDedupeKeepsBestPerSimKeyUpToLimit(t *testing.T) {
	items := []item.Item{
		{ID: 1, Attributes: stats.Stats{AP: 1}},
		{ID: 2, Attributes: stats.Stats{AP: 1}},
		{ID: 3, Attributes: stats.Stats{AP: 1}},
		{ID: 4, Attributes: stats.Stats{AP: 2}},
	}
	out := Dedupe(items, 2, SimKeyOptions{})
	require.Len(t, out, 3) // two AP=1 items + one AP=2 item
	assert.Equal(t, item.ID(1), out[0].ID)
	assert.Equal(t, item.ID(2), out[1].ID)
	assert.Equal(t, item.ID(4), out[2].ID)
}

func TestTrimToDepthKeepsTopNPlusDiversity(t *testing.T) {
	ranked := []item.Item{
		{ID: 1, Attributes: stats.Stats{AP: 0}},
		{ID: 2, Attributes: stats.Stats{AP: 0}},
		{ID: 3, Attributes: stats.Stats{AP: 2}}, // only AP>=2 provider, ranked last
	}
	trimmed := TrimToDepth(ranked, 0, 1) // limit=1, would normally only keep item 1
	ids := map[item.ID]bool{}
	for _, it := range trimmed {
		ids[it.ID] = true
	}
	assert.True(t, ids[1])
	assert.True(t, ids[3]) // pulled back in to satisfy the ap>=2 diversity requirement
}

func TestAssembleWeaponPairsDropsTwoHanderWhenSkipShields(t *testing.T) {
	oneH := []item.Item{{ID: 1}}
	twoH := []item.Item{{ID: 2, DisablesSecondWeapon: true}}
	daggers := []item.Item{{ID: 3}}
	shields := []item.Item{{ID: 4}}

	pairs := AssembleWeaponPairs(oneH, twoH, daggers, shields, true)
	for _, p := range pairs {
		assert.NotEqual(t, item.ID(2), p.FirstWeapon.ID)
	}

	var sawShield bool
	for _, p := range pairs {
		if p.SecondWeapon != nil && p.SecondWeapon.ID == 4 {
			sawShield = true
		}
	}
	assert.True(t, sawShield, "shields still populate the off-hand side when skip_shields is set")
}

func TestAssembleWeaponPairsIncludesTwoHanderWhenAllowed(t *testing.T) {
	oneH := []item.Item{{ID: 1}}
	twoH := []item.Item{{ID: 2, DisablesSecondWeapon: true}}
	pairs := AssembleWeaponPairs(oneH, twoH, nil, nil, false)
	require.Len(t, pairs, 1)
	assert.Equal(t, item.ID(2), pairs[0].FirstWeapon.ID)
	assert.Nil(t, pairs[0].SecondWeapon)
}
