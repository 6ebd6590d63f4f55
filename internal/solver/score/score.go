// Package score computes the crit-weighted damage (or healing) proxy used
// to rank candidate gear sets, following the _score_key/crit_score_key
// pair in solver.py.
package score

import (
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// Weight returns w_e, the elemental-mastery weight: 1.2 for Huppermage,
// 1 otherwise (spec.md §4.3).
func Weight(class stats.Class) float64 {
	if class == stats.Huppermage {
		return 1.2
	}
	return 1
}

// Base computes the "base" term of §4.3: the priority-weighted sum of
// mastery stats, before the crit/fd split.
func Base(s stats.Stats, p stats.StatPriority, class stats.Class) float64 {
	we := Weight(class)
	base := we * float64(s.ElementalMastery)

	if p.Melee {
		base += float64(s.MeleeMastery)
	}
	if p.Distance {
		base += float64(s.DistanceMastery)
	}

	base += weightedNegatable(float64(s.BerserkMastery), p.Berserk, p.NegBerserk)
	base += weightedNegatable(float64(s.RearMastery), p.Rear, p.NegRear)

	if p.Heal {
		base += float64(s.HealsPerformed)
	}

	if p.NumMastery >= 1 {
		base += we * float64(s.Mastery1Element)
	}
	if p.NumMastery >= 2 {
		base += we * float64(s.Mastery2Elements)
	}
	if p.NumMastery >= 3 {
		base += we * float64(s.Mastery3Elements)
	}

	if n := p.Elements.Count(); n > 0 {
		var elementVals float64
		if p.Elements.Contains(stats.Air) {
			elementVals += float64(s.AirMastery)
		}
		if p.Elements.Contains(stats.Earth) {
			elementVals += float64(s.EarthMastery)
		}
		if p.Elements.Contains(stats.Water) {
			elementVals += float64(s.WaterMastery)
		}
		if p.Elements.Contains(stats.Fire) {
			elementVals += float64(s.FireMastery)
		}
		base += elementVals / float64(n) * we
	}

	return base
}

// weightedNegatable applies the "only counts when wanted, unless negative
// and a neg-policy kicks in" rule shared by berserk and rear mastery.
func weightedNegatable(v float64, wanted bool, neg stats.NegativePolicy) float64 {
	if wanted && neg == stats.NegIgnore {
		return v
	}
	if v < 0 {
		return v * neg.Weight()
	}
	if wanted {
		return v
	}
	return 0
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Options carries the scoring knobs that don't live on Stats or
// StatPriority: whether "unraveling" is active, and an additive FD bonus.
type Options struct {
	Unraveling bool
	// FDBonus is added into fd_mult. Solve sets it to 0.30 when the base
	// stats alone satisfy ElementalismBonus (SPEC_FULL #7), and the search
	// kernel adds Neutrality's fd_mod/100 on top for each candidate.
	FDBonus float64
}

// ElementalismBonus reports whether Supplemented Feature #7 applies: one-
// and two-element mastery are both zero but three-element mastery is
// nonzero. When true, callers add 0.30 to fd_mult and +30 to the
// HealsPerformed-weighted base, gated by config.TuningConfig.ElementalismAware.
func ElementalismBonus(s stats.Stats) bool {
	return s.Mastery1Element == 0 && s.Mastery2Elements == 0 && s.Mastery3Elements != 0
}

// Score computes the full crit-weighted score for a Stats vector per
// spec.md §4.3.
func Score(s stats.Stats, p stats.StatPriority, class stats.Class, opts Options) float64 {
	base := Base(s, p, class)

	critMastery := float64(s.CriticalMastery)
	if opts.Unraveling && s.CriticalHit >= 40 {
		base += critMastery
		critMastery = 0
	}

	critRate := clamp(float64(s.CriticalHit)+3, 0, 100)
	fdMult := (10000+float64(s.FinalDamage))/10000 + opts.FDBonus

	nonCrit := base * (100 - critRate) / 100 * fdMult
	crit := (base + critMastery) * critRate / 100 * fdMult * 1.25

	return crit + nonCrit
}

// CritScoreKey is the cheap, monotone-ish ranking key used to prune
// candidates during pool/pair construction (spec.md §4.3): it never
// replaces Score for the final ranking, only for ordering during
// pruning.
func CritScoreKey(s stats.Stats, p stats.StatPriority, class stats.Class, opts Options, baseCrit int) float64 {
	sc := Score(s, p, class, opts)
	return sc * (1 + (float64(s.CriticalHit)+float64(baseCrit))/80)
}
