package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/relicware/gearsolve/internal/solver/stats"
)

func TestWeightHuppermageBonus(t *testing.T) {
	assert.Equal(t, 1.2, Weight(stats.Huppermage))
	assert.Equal(t, 1.0, Weight(stats.Iop))
}

func TestScoreZeroStatsIsZero(t *testing.T) {
	s := Score(stats.Stats{}, stats.DefaultStatPriority(), stats.Iop, Options{})
	assert.Equal(t, 0.0, s)
}

func TestScoreMonotoneInElementalMastery(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		em := rapid.IntRange(0, 2000).Draw(rt, "em")
		delta := rapid.IntRange(1, 500).Draw(rt, "delta")

		p := stats.DefaultStatPriority()
		low := Score(stats.Stats{ElementalMastery: em, CriticalHit: 10}, p, stats.Iop, Options{})
		high := Score(stats.Stats{ElementalMastery: em + delta, CriticalHit: 10}, p, stats.Iop, Options{})

		assert.GreaterOrEqual(rt, high, low)
	})
}

func TestScoreMonotoneUnderMeleeOptIn(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		melee := rapid.IntRange(1, 1000).Draw(rt, "melee")
		s := stats.Stats{MeleeMastery: melee, CriticalHit: 5}

		without := Score(s, stats.StatPriority{NumMastery: 3, Melee: false}, stats.Iop, Options{})
		with := Score(s, stats.StatPriority{NumMastery: 3, Melee: true}, stats.Iop, Options{})

		assert.GreaterOrEqual(rt, with, without)
	})
}

func TestCritRateClampedTo100(t *testing.T) {
	p := stats.DefaultStatPriority()
	low := Score(stats.Stats{ElementalMastery: 100, CriticalHit: 200}, p, stats.Iop, Options{})
	high := Score(stats.Stats{ElementalMastery: 100, CriticalHit: 300}, p, stats.Iop, Options{})
	assert.Equal(t, low, high)
}

func TestUnravelingFoldsCritMasteryIntoBase(t *testing.T) {
	p := stats.DefaultStatPriority()
	s := stats.Stats{ElementalMastery: 100, CriticalHit: 40, CriticalMastery: 50}

	withUnravel := Score(s, p, stats.Iop, Options{Unraveling: true})
	withoutUnravel := Score(s, p, stats.Iop, Options{Unraveling: false})

	assert.NotEqual(t, withUnravel, withoutUnravel)
}

func TestElementalismBonusDetection(t *testing.T) {
	assert.True(t, ElementalismBonus(stats.Stats{Mastery3Elements: 10}))
	assert.False(t, ElementalismBonus(stats.Stats{Mastery1Element: 1, Mastery3Elements: 10}))
	assert.False(t, ElementalismBonus(stats.Stats{}))
}

func TestApplyBasePassivesMotivationAndCarnage(t *testing.T) {
	base := stats.Stats{AP: 10}
	out := ApplyBasePassives(base, 175, stats.Iop, []int{PassiveMotivation, PassiveCarnage}, nil)
	require.Equal(t, 11, out.AP)
	assert.Equal(t, -20+15, out.FinalDamage)
}

func TestApplyBasePassivesMemoryRequiresXelor(t *testing.T) {
	base := stats.Stats{WP: 1, MP: 4}
	notXelor := ApplyBasePassives(base, 100, stats.Iop, []int{PassiveMemory}, nil)
	assert.Equal(t, base, notXelor)

	xelor := ApplyBasePassives(base, 100, stats.Xelor, []int{PassiveMemory}, nil)
	assert.Equal(t, 7, xelor.WP)
	assert.Equal(t, 2, xelor.MP)
}

func TestInfluenceLevelCapsAtSix(t *testing.T) {
	assert.Equal(t, 0, InfluenceLevel(nil))
	assert.Equal(t, 3, InfluenceLevel([]int{SublimationInfluence3}))
	assert.Equal(t, 6, InfluenceLevel([]int{SublimationInfluence1, SublimationInfluence2, SublimationInfluence3}))
}

func TestApplyBasePassivesInfluenceCriticalHit(t *testing.T) {
	out := ApplyBasePassives(stats.Stats{}, 100, stats.Iop, nil, []int{SublimationInfluence2, SublimationInfluence3})
	assert.Equal(t, 3*5, out.CriticalHit)
}

func TestNeutralityFDModGatedBySecondarySum(t *testing.T) {
	withMastery := stats.Stats{Mastery1Element: 10}
	_, fdMod := NeutralityFDMod(withMastery, []int{SublimationNeutralityIII})
	assert.Equal(t, 0, fdMod)

	noMastery := stats.Stats{}
	_, fdMod = NeutralityFDMod(noMastery, []int{SublimationNeutralityIII})
	assert.Equal(t, 8*3, fdMod)
}

func TestElementalismFDAndHealBonusOnlyWhenPure(t *testing.T) {
	pure := stats.Stats{Mastery3Elements: 50}
	out := ElementalismFDAndHealBonus(pure)
	assert.Equal(t, 3000, out.FinalDamage)
	assert.Equal(t, 30, out.HealsPerformed)

	mixed := stats.Stats{Mastery1Element: 1, Mastery3Elements: 50}
	assert.Equal(t, mixed, ElementalismFDAndHealBonus(mixed))
}
