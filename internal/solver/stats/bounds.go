package stats

// Sentinel bounds for unset minimum/maximum fields. Using large finite
// sentinels rather than math.MinInt/MaxInt keeps Add/Sub on bound vectors
// safe from overflow in pathological configurations.
const (
	DummyMin = -1_000_000
	DummyMax = 1_000_000
)

// SetMinimums is a lower-bound vector, same shape as Stats. Unset fields
// default to DummyMin so they never constrain a candidate set.
type SetMinimums struct {
	AP, MP, WP, RA                                     int
	CriticalHit, CriticalMastery                       int
	ElementalMastery                                    int
	FireMastery, WaterMastery, AirMastery, EarthMastery int
	Mastery1Element, Mastery2Elements, Mastery3Elements int
	DistanceMastery, RearMastery, MeleeMastery          int
	BerserkMastery, HealingMastery                      int
	Block, Lock, Dodge                                  int
	HP, Control                                         int
	FireResistance, WaterResistance                     int
	AirResistance, EarthResistance                      int
	FinalDamage, HealsPerformed                         int
}

// NewSetMinimums returns a SetMinimums with every field at DummyMin.
func NewSetMinimums() SetMinimums {
	return SetMinimums{
		AP: DummyMin, MP: DummyMin, WP: DummyMin, RA: DummyMin,
		CriticalHit: DummyMin, CriticalMastery: DummyMin,
		ElementalMastery: DummyMin,
		FireMastery:      DummyMin, WaterMastery: DummyMin, AirMastery: DummyMin, EarthMastery: DummyMin,
		Mastery1Element: DummyMin, Mastery2Elements: DummyMin, Mastery3Elements: DummyMin,
		DistanceMastery: DummyMin, RearMastery: DummyMin, MeleeMastery: DummyMin,
		BerserkMastery: DummyMin, HealingMastery: DummyMin,
		Block: DummyMin, Lock: DummyMin, Dodge: DummyMin,
		HP: DummyMin, Control: DummyMin,
		FireResistance: DummyMin, WaterResistance: DummyMin,
		AirResistance: DummyMin, EarthResistance: DummyMin,
		FinalDamage: DummyMin, HealsPerformed: DummyMin,
	}
}

// Unhandled reports whether any field beyond the natively handled set
// (ap, mp, ra, wp, critical_hit) deviates from its sentinel. The
// feasibility analyzer and pool builder use this to conservatively reject
// item conditions they cannot reason about (spec.md §4.1).
func (m SetMinimums) Unhandled() bool {
	return m.CriticalMastery != DummyMin ||
		m.ElementalMastery != DummyMin ||
		m.FireMastery != DummyMin || m.WaterMastery != DummyMin || m.AirMastery != DummyMin || m.EarthMastery != DummyMin ||
		m.Mastery1Element != DummyMin || m.Mastery2Elements != DummyMin || m.Mastery3Elements != DummyMin ||
		m.DistanceMastery != DummyMin || m.RearMastery != DummyMin || m.MeleeMastery != DummyMin ||
		m.BerserkMastery != DummyMin || m.HealingMastery != DummyMin ||
		m.Block != DummyMin || m.Lock != DummyMin || m.Dodge != DummyMin ||
		m.HP != DummyMin || m.Control != DummyMin ||
		m.FireResistance != DummyMin || m.WaterResistance != DummyMin ||
		m.AirResistance != DummyMin || m.EarthResistance != DummyMin ||
		m.FinalDamage != DummyMin || m.HealsPerformed != DummyMin
}

// And returns the intersection of two lower bounds: the element-wise max,
// i.e. the tighter (higher) of each pair of minimums.
func (m SetMinimums) And(o SetMinimums) SetMinimums {
	return SetMinimums{
		AP: maxInt(m.AP, o.AP), MP: maxInt(m.MP, o.MP), WP: maxInt(m.WP, o.WP), RA: maxInt(m.RA, o.RA),
		CriticalHit:      maxInt(m.CriticalHit, o.CriticalHit),
		CriticalMastery:  maxInt(m.CriticalMastery, o.CriticalMastery),
		ElementalMastery: maxInt(m.ElementalMastery, o.ElementalMastery),
		FireMastery:      maxInt(m.FireMastery, o.FireMastery),
		WaterMastery:     maxInt(m.WaterMastery, o.WaterMastery),
		AirMastery:       maxInt(m.AirMastery, o.AirMastery),
		EarthMastery:     maxInt(m.EarthMastery, o.EarthMastery),
		Mastery1Element:  maxInt(m.Mastery1Element, o.Mastery1Element),
		Mastery2Elements: maxInt(m.Mastery2Elements, o.Mastery2Elements),
		Mastery3Elements: maxInt(m.Mastery3Elements, o.Mastery3Elements),
		DistanceMastery:  maxInt(m.DistanceMastery, o.DistanceMastery),
		RearMastery:      maxInt(m.RearMastery, o.RearMastery),
		MeleeMastery:     maxInt(m.MeleeMastery, o.MeleeMastery),
		BerserkMastery:   maxInt(m.BerserkMastery, o.BerserkMastery),
		HealingMastery:   maxInt(m.HealingMastery, o.HealingMastery),
		Block:            maxInt(m.Block, o.Block),
		Lock:             maxInt(m.Lock, o.Lock),
		Dodge:            maxInt(m.Dodge, o.Dodge),
		HP:               maxInt(m.HP, o.HP),
		Control:          maxInt(m.Control, o.Control),
		FireResistance:   maxInt(m.FireResistance, o.FireResistance),
		WaterResistance:  maxInt(m.WaterResistance, o.WaterResistance),
		AirResistance:    maxInt(m.AirResistance, o.AirResistance),
		EarthResistance:  maxInt(m.EarthResistance, o.EarthResistance),
		FinalDamage:      maxInt(m.FinalDamage, o.FinalDamage),
		HealsPerformed:   maxInt(m.HealsPerformed, o.HealsPerformed),
	}
}

// Sub subtracts a Stats delta from every lower bound, used by the
// feasibility analyzer to compute remaining need after base stats and
// forced items are accounted for. Sentinels are left untouched so an
// unset minimum never becomes spuriously satisfiable.
func (m SetMinimums) Sub(s Stats) SetMinimums {
	sub := func(bound, delta int) int {
		if bound == DummyMin {
			return DummyMin
		}
		return bound - delta
	}
	return SetMinimums{
		AP: sub(m.AP, s.AP), MP: sub(m.MP, s.MP), WP: sub(m.WP, s.WP), RA: sub(m.RA, s.RA),
		CriticalHit:      sub(m.CriticalHit, s.CriticalHit),
		CriticalMastery:  sub(m.CriticalMastery, s.CriticalMastery),
		ElementalMastery: sub(m.ElementalMastery, s.ElementalMastery),
		FireMastery:      sub(m.FireMastery, s.FireMastery),
		WaterMastery:     sub(m.WaterMastery, s.WaterMastery),
		AirMastery:       sub(m.AirMastery, s.AirMastery),
		EarthMastery:     sub(m.EarthMastery, s.EarthMastery),
		Mastery1Element:  sub(m.Mastery1Element, s.Mastery1Element),
		Mastery2Elements: sub(m.Mastery2Elements, s.Mastery2Elements),
		Mastery3Elements: sub(m.Mastery3Elements, s.Mastery3Elements),
		DistanceMastery:  sub(m.DistanceMastery, s.DistanceMastery),
		RearMastery:      sub(m.RearMastery, s.RearMastery),
		MeleeMastery:     sub(m.MeleeMastery, s.MeleeMastery),
		BerserkMastery:   sub(m.BerserkMastery, s.BerserkMastery),
		HealingMastery:   sub(m.HealingMastery, s.HealingMastery),
		Block:            sub(m.Block, s.Block),
		Lock:             sub(m.Lock, s.Lock),
		Dodge:            sub(m.Dodge, s.Dodge),
		HP:               sub(m.HP, s.HP),
		Control:          sub(m.Control, s.Control),
		FireResistance:   sub(m.FireResistance, s.FireResistance),
		WaterResistance:  sub(m.WaterResistance, s.WaterResistance),
		AirResistance:    sub(m.AirResistance, s.AirResistance),
		EarthResistance:  sub(m.EarthResistance, s.EarthResistance),
		FinalDamage:      sub(m.FinalDamage, s.FinalDamage),
		HealsPerformed:   sub(m.HealsPerformed, s.HealsPerformed),
	}
}

// SetMaximums is an upper-bound vector, same shape as Stats. Unset fields
// default to DummyMax so they never constrain a candidate set.
type SetMaximums struct {
	AP, MP, WP, RA                                     int
	CriticalHit, CriticalMastery                       int
	ElementalMastery                                    int
	FireMastery, WaterMastery, AirMastery, EarthMastery int
	Mastery1Element, Mastery2Elements, Mastery3Elements int
	DistanceMastery, RearMastery, MeleeMastery          int
	BerserkMastery, HealingMastery                      int
	Block, Lock, Dodge                                  int
	HP, Control                                         int
	FireResistance, WaterResistance                     int
	AirResistance, EarthResistance                      int
	FinalDamage, HealsPerformed                         int
}

// NewSetMaximums returns a SetMaximums with every field at DummyMax.
func NewSetMaximums() SetMaximums {
	return SetMaximums{
		AP: DummyMax, MP: DummyMax, WP: DummyMax, RA: DummyMax,
		CriticalHit: DummyMax, CriticalMastery: DummyMax,
		ElementalMastery: DummyMax,
		FireMastery:      DummyMax, WaterMastery: DummyMax, AirMastery: DummyMax, EarthMastery: DummyMax,
		Mastery1Element: DummyMax, Mastery2Elements: DummyMax, Mastery3Elements: DummyMax,
		DistanceMastery: DummyMax, RearMastery: DummyMax, MeleeMastery: DummyMax,
		BerserkMastery: DummyMax, HealingMastery: DummyMax,
		Block: DummyMax, Lock: DummyMax, Dodge: DummyMax,
		HP: DummyMax, Control: DummyMax,
		FireResistance: DummyMax, WaterResistance: DummyMax,
		AirResistance: DummyMax, EarthResistance: DummyMax,
		FinalDamage: DummyMax, HealsPerformed: DummyMax,
	}
}

// Unhandled reports whether any field beyond the natively handled set
// (ap, mp, ra, wp, critical_hit) deviates from its sentinel.
func (m SetMaximums) Unhandled() bool {
	return m.CriticalMastery != DummyMax ||
		m.ElementalMastery != DummyMax ||
		m.FireMastery != DummyMax || m.WaterMastery != DummyMax || m.AirMastery != DummyMax || m.EarthMastery != DummyMax ||
		m.Mastery1Element != DummyMax || m.Mastery2Elements != DummyMax || m.Mastery3Elements != DummyMax ||
		m.DistanceMastery != DummyMax || m.RearMastery != DummyMax || m.MeleeMastery != DummyMax ||
		m.BerserkMastery != DummyMax || m.HealingMastery != DummyMax ||
		m.Block != DummyMax || m.Lock != DummyMax || m.Dodge != DummyMax ||
		m.HP != DummyMax || m.Control != DummyMax ||
		m.FireResistance != DummyMax || m.WaterResistance != DummyMax ||
		m.AirResistance != DummyMax || m.EarthResistance != DummyMax ||
		m.FinalDamage != DummyMax || m.HealsPerformed != DummyMax
}

// And returns the intersection of two upper bounds: the element-wise min,
// i.e. the tighter (lower) of each pair of maximums.
func (m SetMaximums) And(o SetMaximums) SetMaximums {
	return SetMaximums{
		AP: minInt(m.AP, o.AP), MP: minInt(m.MP, o.MP), WP: minInt(m.WP, o.WP), RA: minInt(m.RA, o.RA),
		CriticalHit:      minInt(m.CriticalHit, o.CriticalHit),
		CriticalMastery:  minInt(m.CriticalMastery, o.CriticalMastery),
		ElementalMastery: minInt(m.ElementalMastery, o.ElementalMastery),
		FireMastery:      minInt(m.FireMastery, o.FireMastery),
		WaterMastery:     minInt(m.WaterMastery, o.WaterMastery),
		AirMastery:       minInt(m.AirMastery, o.AirMastery),
		EarthMastery:     minInt(m.EarthMastery, o.EarthMastery),
		Mastery1Element:  minInt(m.Mastery1Element, o.Mastery1Element),
		Mastery2Elements: minInt(m.Mastery2Elements, o.Mastery2Elements),
		Mastery3Elements: minInt(m.Mastery3Elements, o.Mastery3Elements),
		DistanceMastery:  minInt(m.DistanceMastery, o.DistanceMastery),
		RearMastery:      minInt(m.RearMastery, o.RearMastery),
		MeleeMastery:     minInt(m.MeleeMastery, o.MeleeMastery),
		BerserkMastery:   minInt(m.BerserkMastery, o.BerserkMastery),
		HealingMastery:   minInt(m.HealingMastery, o.HealingMastery),
		Block:            minInt(m.Block, o.Block),
		Lock:             minInt(m.Lock, o.Lock),
		Dodge:            minInt(m.Dodge, o.Dodge),
		HP:               minInt(m.HP, o.HP),
		Control:          minInt(m.Control, o.Control),
		FireResistance:   minInt(m.FireResistance, o.FireResistance),
		WaterResistance:  minInt(m.WaterResistance, o.WaterResistance),
		AirResistance:    minInt(m.AirResistance, o.AirResistance),
		EarthResistance:  minInt(m.EarthResistance, o.EarthResistance),
		FinalDamage:      minInt(m.FinalDamage, o.FinalDamage),
		HealsPerformed:   minInt(m.HealsPerformed, o.HealsPerformed),
	}
}

// Within reports whether mins <= s <= maxs, element-wise.
func Within(mins SetMinimums, s Stats, maxs SetMaximums) bool {
	return s.AP >= mins.AP && s.AP <= maxs.AP &&
		s.MP >= mins.MP && s.MP <= maxs.MP &&
		s.WP >= mins.WP && s.WP <= maxs.WP &&
		s.RA >= mins.RA && s.RA <= maxs.RA &&
		s.CriticalHit >= mins.CriticalHit && s.CriticalHit <= maxs.CriticalHit &&
		s.CriticalMastery >= mins.CriticalMastery && s.CriticalMastery <= maxs.CriticalMastery &&
		s.ElementalMastery >= mins.ElementalMastery && s.ElementalMastery <= maxs.ElementalMastery &&
		s.FireMastery >= mins.FireMastery && s.FireMastery <= maxs.FireMastery &&
		s.WaterMastery >= mins.WaterMastery && s.WaterMastery <= maxs.WaterMastery &&
		s.AirMastery >= mins.AirMastery && s.AirMastery <= maxs.AirMastery &&
		s.EarthMastery >= mins.EarthMastery && s.EarthMastery <= maxs.EarthMastery &&
		s.Mastery1Element >= mins.Mastery1Element && s.Mastery1Element <= maxs.Mastery1Element &&
		s.Mastery2Elements >= mins.Mastery2Elements && s.Mastery2Elements <= maxs.Mastery2Elements &&
		s.Mastery3Elements >= mins.Mastery3Elements && s.Mastery3Elements <= maxs.Mastery3Elements &&
		s.DistanceMastery >= mins.DistanceMastery && s.DistanceMastery <= maxs.DistanceMastery &&
		s.RearMastery >= mins.RearMastery && s.RearMastery <= maxs.RearMastery &&
		s.MeleeMastery >= mins.MeleeMastery && s.MeleeMastery <= maxs.MeleeMastery &&
		s.BerserkMastery >= mins.BerserkMastery && s.BerserkMastery <= maxs.BerserkMastery &&
		s.HealingMastery >= mins.HealingMastery && s.HealingMastery <= maxs.HealingMastery &&
		s.Block >= mins.Block && s.Block <= maxs.Block &&
		s.Lock >= mins.Lock && s.Lock <= maxs.Lock &&
		s.Dodge >= mins.Dodge && s.Dodge <= maxs.Dodge &&
		s.HP >= mins.HP && s.HP <= maxs.HP &&
		s.Control >= mins.Control && s.Control <= maxs.Control &&
		s.FireResistance >= mins.FireResistance && s.FireResistance <= maxs.FireResistance &&
		s.WaterResistance >= mins.WaterResistance && s.WaterResistance <= maxs.WaterResistance &&
		s.AirResistance >= mins.AirResistance && s.AirResistance <= maxs.AirResistance &&
		s.EarthResistance >= mins.EarthResistance && s.EarthResistance <= maxs.EarthResistance &&
		s.FinalDamage >= mins.FinalDamage && s.FinalDamage <= maxs.FinalDamage &&
		s.HealsPerformed >= mins.HealsPerformed && s.HealsPerformed <= maxs.HealsPerformed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
