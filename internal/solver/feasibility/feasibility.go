// Package feasibility runs the two reachability proofs spec.md §4.4 asks
// for before search begins: an AP+MP proof and a per-stat (ap/mp/ra/wp)
// proof, both driven by closed tables of "earliest level a slot can
// contribute this stat" mirroring the f_avail table in solver.py.
package feasibility

import (
	"errors"
	"fmt"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/itemdata"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// ErrInfeasible is the sentinel wrapped by both reachability proofs when
// the requested stat minimums cannot possibly be reached (spec.md §7).
var ErrInfeasible = errors.New("gearsolve: infeasible")

// ErrImpossibleStat is the sentinel wrapped when an item's registered
// condition bounds make its forced/included use incompatible with the
// config's requested minimums (spec.md §4.4 final paragraph).
var ErrImpossibleStat = errors.New("gearsolve: impossible stat")

// EternalSwordCandidateID is the first-weapon relic whose +1 AP +1 MP
// closes the AP+MP gap at level >= 200 (SPEC_FULL Supplemented Feature #4).
const EternalSwordCandidateID item.ID = 26593

// apMPSlotLevels gives, per slot, the earliest level at which any
// non-relic/non-epic item in that slot contributes ap+mp >= 1 (spec.md
// §4.4's table).
var apMPSlotLevels = map[stats.Slot]int{
	stats.Neck:        20,
	stats.Back:        20,
	stats.FirstWeapon: 50,
	stats.Chest:       50,
	stats.Legs:        50,
	stats.Head:        230,
}

// perStatSlotLevels mirrors f_avail from solver.py: for each of ap, mp, ra,
// wp, the levels at which each slot starts contributing >=1 unit of that
// stat. A slot may appear more than once (e.g. first_weapon contributes at
// both 50 and 200 for ap), each entry counting toward reachability
// independently once the character's level reaches it.
var perStatSlotLevels = map[string][]slotLevel{
	"ap": {
		{stats.Neck, 20}, {stats.Back, 20},
		{stats.FirstWeapon, 50}, {stats.FirstWeapon, 200},
		{stats.Chest, 80}, {stats.Legs, 200},
	},
	"mp": {
		{stats.Legs, 50}, {stats.Legs, 230},
		{stats.SecondWeapon, 50}, {stats.Chest, 50}, {stats.FirstWeapon, 50},
		{stats.Back, 80}, {stats.Neck, 170}, {stats.Head, 230},
	},
	"ra": {
		{stats.Head, 35}, {stats.Head, 200},
		{stats.FirstWeapon, 65}, {stats.FirstWeapon, 170},
		{stats.Legs, 80}, {stats.Neck, 80}, {stats.Neck, 215},
		{stats.LeftHand, 185}, {stats.Shoulders, 200},
		{stats.Chest, 230}, {stats.Accessory, 230}, {stats.Belt, 230},
	},
	"wp": {
		{stats.Belt, 20}, {stats.FirstWeapon, 50}, {stats.Accessory, 50},
		{stats.Pet, 50}, {stats.Chest, 65}, {stats.SecondWeapon, 65},
		{stats.LeftHand, 80}, {stats.Shoulders, 80}, {stats.Legs, 200},
		{stats.Back, 215}, {stats.Neck, 230},
	},
}

type slotLevel struct {
	Slot  stats.Slot
	Level int
}

// Occupancy summarizes the slots already filled by forced/relic/epic
// items and their combined stat contribution, which the reachability
// proofs must subtract from the gap they're proving is closeable.
type Occupancy struct {
	Stats              stats.Stats
	SlotCounts         map[stats.Slot]int
	AnyDisablesSecondWeapon bool
	HasForcedEpic      bool
	HasForcedRelic     bool
	HasForcedFirstWeaponRelic bool
}

// slotCount returns how many forced items already occupy slot.
func (o Occupancy) slotCount(s stats.Slot) int {
	if o.SlotCounts == nil {
		return 0
	}
	return o.SlotCounts[s]
}

// Input bundles everything the two proofs need.
type Input struct {
	Level           int
	AllowedRarities []stats.Rarity
	ForbiddenItemIDs []item.ID
	BaseStats       stats.Stats
	Mins            stats.SetMinimums
	Occupancy       Occupancy
}

func allows(rarities []stats.Rarity, r stats.Rarity) bool {
	for _, ar := range rarities {
		if ar == r {
			return true
		}
	}
	return false
}

func forbids(ids []item.ID, id item.ID) bool {
	for _, f := range ids {
		if f == id {
			return true
		}
	}
	return false
}

// Result carries the outcome of the AP+MP proof, including whether the
// Eternal Sword must be auto-forced to close an exact gap.
type Result struct {
	ForceEternalSword bool
}

// CheckAPMPReachability runs spec.md §4.4's first proof. Returns
// ErrInfeasible if the requested ap+mp minimum cannot be reached; returns
// a Result with ForceEternalSword set if the gap closes exactly only by
// including the level-200 first-weapon relic.
func CheckAPMPReachability(in Input) (Result, error) {
	needed := (in.Mins.AP - in.BaseStats.AP - in.Occupancy.Stats.AP) +
		(in.Mins.MP - in.BaseStats.MP - in.Occupancy.Stats.MP)

	found := 0
	for slot, lvl := range apMPSlotLevels {
		if in.Occupancy.slotCount(slot) > 0 {
			continue
		}
		if lvl <= in.Level {
			found++
		}
	}

	eternalFindable := false
	if !in.Occupancy.HasForcedEpic && allows(in.AllowedRarities, stats.Epic) {
		found++
	}
	if !in.Occupancy.HasForcedRelic && in.Level >= 50 && allows(in.AllowedRarities, stats.Relic) {
		found++
		if in.Level >= 200 && !in.Occupancy.HasForcedFirstWeaponRelic && !forbids(in.ForbiddenItemIDs, EternalSwordCandidateID) {
			found++
			eternalFindable = true
		}
	}

	// SPEC_FULL Supplemented Feature #5: level-230-only neck/head
	// findable bonuses (Gufet'Helm for head MP+RA, Lyfamulet for neck).
	if in.Level >= 230 {
		if in.Occupancy.slotCount(stats.Head) == 0 {
			found++
		}
		if in.Occupancy.slotCount(stats.Neck) == 0 {
			found++
		}
	}

	if found == needed && eternalFindable {
		return Result{ForceEternalSword: true}, nil
	}
	if found < needed {
		return Result{}, fmt.Errorf("%w: ap+mp minimum unreachable (need %d, found %d)", ErrInfeasible, needed, found)
	}
	return Result{}, nil
}

// APMPSlack reports whether the ap+mp reachability proof has more
// findable sources than strictly needed. The pool builder gates its
// rarity-adjusted "every item must contribute to ap+mp" filter on this
// (spec.md §4.5 step 1: "when AP/MP is tight").
func APMPSlack(in Input) bool {
	needed := (in.Mins.AP - in.BaseStats.AP - in.Occupancy.Stats.AP) +
		(in.Mins.MP - in.BaseStats.MP - in.Occupancy.Stats.MP)

	found := 0
	for slot, lvl := range apMPSlotLevels {
		if in.Occupancy.slotCount(slot) > 0 {
			continue
		}
		if lvl <= in.Level {
			found++
		}
	}
	if !in.Occupancy.HasForcedEpic && allows(in.AllowedRarities, stats.Epic) {
		found++
	}
	if !in.Occupancy.HasForcedRelic && in.Level >= 50 && allows(in.AllowedRarities, stats.Relic) {
		found++
		if in.Level >= 200 && !in.Occupancy.HasForcedFirstWeaponRelic {
			found++
		}
	}
	if in.Level >= 230 {
		if in.Occupancy.slotCount(stats.Head) == 0 {
			found++
		}
		if in.Occupancy.slotCount(stats.Neck) == 0 {
			found++
		}
	}
	return found > needed
}

// CheckPerStatReachability runs spec.md §4.4's second proof for ap, mp,
// ra, and wp independently.
func CheckPerStatReachability(in Input) error {
	for _, stat := range []string{"ap", "mp", "ra", "wp"} {
		needed := neededFor(stat, in.Mins, in.BaseStats, in.Occupancy.Stats)

		// SPEC_FULL #4: epic/relic findable deductions, including the #6
		// level-threshold ra/ap deductions from specific epic/relic rings.
		if !in.Occupancy.HasForcedEpic && allows(in.AllowedRarities, stats.Epic) {
			if stat == "mp" || stat == "ap" {
				needed--
			}
			needed -= epicRADeduction(stat, in.Level)
			if stat == "ap" && in.Level >= 140 {
				needed-- // Harlock's boots
			}
		}
		if !in.Occupancy.HasForcedRelic && allows(in.AllowedRarities, stats.Relic) {
			if in.Level >= 50 && (stat == "mp" || stat == "ap") {
				needed--
			}
			needed -= relicRADeduction(stat, in.Level)
		}

		for _, sl := range perStatSlotLevels[stat] {
			count := in.Occupancy.slotCount(sl.Slot)
			limit := 1
			if sl.Slot == stats.LeftHand {
				limit = 2
			}
			if count >= limit {
				continue
			}
			if sl.Slot == stats.SecondWeapon && in.Occupancy.AnyDisablesSecondWeapon {
				continue
			}
			if sl.Level <= in.Level {
				needed--
			}
		}

		if needed > 0 {
			return fmt.Errorf("%w: %s minimum unreachable (short by %d)", ErrInfeasible, stat, needed)
		}
	}
	return nil
}

func neededFor(stat string, mins stats.SetMinimums, base, occupied stats.Stats) int {
	switch stat {
	case "ap":
		return mins.AP - base.AP - occupied.AP
	case "mp":
		return mins.MP - base.MP - occupied.MP
	case "ra":
		return mins.RA - base.RA - occupied.RA
	case "wp":
		return mins.WP - base.WP - occupied.WP
	}
	return 0
}

// epicRADeduction encodes SPEC_FULL Supplemented Feature #6's epic-ring
// level thresholds for the ra stat: sigiknight ring (140), golden belt
// (155), azure dreggon headgear (185, only below 200).
func epicRADeduction(stat string, level int) int {
	if stat != "ra" {
		return 0
	}
	n := 0
	if level >= 140 {
		n++
	}
	if level >= 155 {
		n++
	}
	if level < 200 && level >= 185 {
		n++
	}
	return n
}

// relicRADeduction mirrors epicRADeduction for relic-sourced ra items:
// asse shield / soft oak hat (140), golden keychain (155), moon
// epaulettes (180, only below 200).
func relicRADeduction(stat string, level int) int {
	if stat != "ra" {
		return 0
	}
	n := 0
	if level >= 140 {
		n++
	}
	if level >= 155 {
		n++
	}
	if level < 200 && level >= 180 {
		n++
	}
	return n
}

// CheckItemCondition reports whether id's registered condition maxs are
// tighter than the config's requested mins in any field, in which case
// forcing or including that item is impossible (spec.md §4.4's final
// paragraph).
func CheckItemCondition(id item.ID, mins stats.SetMinimums) error {
	cond := itemdata.GetConditions(id)
	if conflicts(mins, cond.Maxs) {
		return fmt.Errorf("%w: item %d's condition bounds conflict with requested minimums", ErrImpossibleStat, id)
	}
	return nil
}

// conflicts reports whether any field of mins exceeds the corresponding
// field of maxs, field by field (mirrors item_condition_conflicts_requested_stats).
func conflicts(mins stats.SetMinimums, maxs stats.SetMaximums) bool {
	return mins.AP > maxs.AP || mins.MP > maxs.MP || mins.WP > maxs.WP || mins.RA > maxs.RA ||
		mins.CriticalHit > maxs.CriticalHit || mins.CriticalMastery > maxs.CriticalMastery ||
		mins.ElementalMastery > maxs.ElementalMastery ||
		mins.Block > maxs.Block || mins.Lock > maxs.Lock || mins.Dodge > maxs.Dodge ||
		mins.DistanceMastery > maxs.DistanceMastery
}
