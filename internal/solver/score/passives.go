package score

import "github.com/relicware/gearsolve/internal/solver/stats"

// Passive ids recognized by ApplyBasePassives and ApplyStatlinePassives,
// matching the numeric ids the original catalog assigns them.
const (
	PassiveMotivation   = 20003
	PassiveCarnage      = 20006
	PassiveMemory       = 756  // Xelor
	PassiveBravery      = 5100 // Iop
	PassiveSramToTheBone = 4610
	PassiveArtfulLocker = 7096 // Masqueraider
	PassiveArtfulDodge  = 7109 // Masqueraider
)

// Sublimation ids recognized by the influence, Inflexibility II, and
// Neutrality transforms.
const (
	SublimationInfluence1  = 28871
	SublimationInfluence2  = 27152
	SublimationInfluence3  = 28872
	SublimationUnraveling  = 24132
	SublimationTwoHanded   = 27186
	SublimationInflexibilityII = 29874
	SublimationNeutralityI   = 29001
	SublimationNeutralityII  = 29002
	SublimationNeutralityIII = 29003
)

// hasPassive/hasSublimation are small membership checks over the
// config's closed id lists.
func hasPassive(passives []int, id int) bool {
	for _, p := range passives {
		if p == id {
			return true
		}
	}
	return false
}

func hasSublimation(subs []int, id int) bool {
	for _, s := range subs {
		if s == id {
			return true
		}
	}
	return false
}

// InfluenceLevel sums the Influence sublimation family's contribution
// (SPEC_FULL Supplemented Feature #3): 28871 contributes 1, 27152
// contributes 2, 28872 contributes 3.
func InfluenceLevel(subs []int) int {
	level := 0
	if hasSublimation(subs, SublimationInfluence1) {
		level++
	}
	if hasSublimation(subs, SublimationInfluence2) {
		level += 2
	}
	if hasSublimation(subs, SublimationInfluence3) {
		level += 3
	}
	return level
}

// ApplyBasePassives folds the level/passive/sublimation-driven base-stat
// modifiers into the character's base Stats, before item stats are added
// in. This covers Motivation, Carnage, Xelor's Memory, and the Influence
// sublimation critical_hit bonus (spec.md §4.3; SPEC_FULL #3).
func ApplyBasePassives(base stats.Stats, level int, class stats.Class, passives, sublimations []int) stats.Stats {
	out := base

	if hasPassive(passives, PassiveMotivation) {
		out = out.Add(stats.Stats{AP: 1, FinalDamage: -20})
	}
	if hasPassive(passives, PassiveCarnage) {
		switch {
		case level >= 175:
			out = out.Add(stats.Stats{FinalDamage: 15})
		case level >= 75:
			out = out.Add(stats.Stats{FinalDamage: 10})
		}
	}
	if class == stats.Xelor && hasPassive(passives, PassiveMemory) {
		out = out.Add(stats.Stats{WP: 6, MP: -2})
	}

	if lvl := InfluenceLevel(sublimations); lvl > 0 {
		out = out.Add(stats.Stats{CriticalHit: 3 * minInt(lvl, 6)})
	}

	return out
}

// ApplyStatlinePassives folds the equipped-set-dependent passives into a
// candidate statline (spec.md §4.7 "post-modifiers"): the Ecaflip overcrit
// bonus, Iop's Bravery, Sram-to-the-bone, and Masqueraider's Artful Locker
// / Artful Dodge. Returns only the modified statline; the fd_mod from
// Inflexibility II / Neutrality is computed separately by NeutralityFDMod.
func ApplyStatlinePassives(statline stats.Stats, level int, class stats.Class, passives []int, criticalHit int) stats.Stats {
	out := statline

	if class == stats.Ecaflip && criticalHit > 100 {
		out = out.Add(stats.Stats{FinalDamage: int(0.5 * float64(criticalHit-100) * 100)})
	}

	if class == stats.Iop && hasPassive(passives, PassiveBravery) && level >= 90 {
		blockMod := clampInt(out.Block/2, 0, 20)
		if blockMod > 0 {
			out = out.Add(stats.Stats{CriticalHit: blockMod})
		}
	}

	if class == stats.Sram && hasPassive(passives, PassiveSramToTheBone) && level >= 100 {
		bonus := 20
		if level >= 200 {
			bonus = 30
		}
		out = out.Add(stats.Stats{CriticalHit: bonus})
	}

	if class == stats.Masqueraider {
		if hasPassive(passives, PassiveArtfulLocker) && level >= 20 {
			out = out.Add(stats.Stats{MeleeMastery: level * 2})
		}
		if hasPassive(passives, PassiveArtfulDodge) && level >= 85 {
			out = out.Add(stats.Stats{DistanceMastery: level * 2})
		}
	}

	return out
}

// NeutralityFDMod computes fd_mod from Inflexibility II and Neutrality I-III,
// both of which only activate when the combined equipped+base Stats carries
// zero secondary (1/2/3-element) mastery (spec.md §4.3, §9 design note on
// "secondary sum gate").
//
// equipped is the candidate's scoring statline (base plus items, after
// ApplyStatlinePassives, which never changes the secondary masteries the
// gate reads); the Inflexibility II branch mutates a copy of it and the caller is expected
// to re-score using the returned adjusted Stats when present.
func NeutralityFDMod(equipped stats.Stats, sublimations []int) (adjusted stats.Stats, fdMod int) {
	adjusted = equipped
	if equipped.SecondarySum() > 0 {
		return adjusted, 0
	}

	if hasSublimation(sublimations, SublimationInflexibilityII) {
		adjusted = adjusted.Add(stats.Stats{
			ElementalMastery: int(float64(adjusted.ElementalMastery) * 0.15),
			Mastery1Element:  int(float64(adjusted.Mastery1Element) * 0.15),
			Mastery2Elements: int(float64(adjusted.Mastery2Elements) * 0.15),
			Mastery3Elements: int(float64(adjusted.Mastery2Elements) * 0.15),
		})
	}

	neutralityC := 0
	if hasSublimation(sublimations, SublimationNeutralityI) {
		neutralityC++
	}
	if hasSublimation(sublimations, SublimationNeutralityII) {
		neutralityC += 2
	}
	if hasSublimation(sublimations, SublimationNeutralityIII) {
		neutralityC += 3
	}
	fdMod = 8 * minInt(neutralityC, 4)

	return adjusted, fdMod
}

// ElementalismFDAndHealBonus implements SPEC_FULL Supplemented Feature #7:
// when one- and two-element mastery are both zero but three-element
// mastery is nonzero, the set is treated as "elementalism-pure" and gets
// +30 final damage and +30 heals-performed. Gated by the caller on
// config.TuningConfig.ElementalismAware.
func ElementalismFDAndHealBonus(s stats.Stats) stats.Stats {
	if !ElementalismBonus(s) {
		return s
	}
	// FinalDamage is centipercent-scaled (see stats.Stats doc comment); a
	// flat +30 percentage-point bonus is +3000 in that scale. HealsPerformed
	// stays a plain percentage-point field, so +30 there is unscaled.
	return s.Add(stats.Stats{FinalDamage: 3000, HealsPerformed: 30})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
