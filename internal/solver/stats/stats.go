package stats

// Stats is the fixed-width attribute vector shared by item contributions,
// character base stats, and the aggregated stat line evaluated during
// search. Every operation over Stats is element-wise and enumerates fields
// explicitly rather than via reflection, per the solver's "dynamic
// duck-typed stat access" redesign note: attributes are typed fields, not
// name-indexed lookups.
type Stats struct {
	AP int
	MP int
	WP int
	RA int

	CriticalHit     int
	CriticalMastery int

	ElementalMastery int
	FireMastery      int
	WaterMastery     int
	AirMastery       int
	EarthMastery     int

	Mastery1Element  int
	Mastery2Elements int
	Mastery3Elements int

	DistanceMastery int
	RearMastery     int
	MeleeMastery    int
	BerserkMastery  int
	HealingMastery  int

	Block int
	Lock  int
	Dodge int

	HP      int
	Control int

	FireResistance  int
	WaterResistance int
	AirResistance   int
	EarthResistance int

	// FinalDamage is fd expressed in centipercent (1 unit = 0.01 percentage
	// point), so a typical item's "+20% final damage" is stored as 2000 and
	// a passive's fractional "+0.15%" bonus is stored as 15. This lets a
	// fixed-width int field carry both scales without rounding either away.
	FinalDamage int
	// HealsPerformed is a percentage-point bonus to effective healing.
	HealsPerformed int
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		AP:               s.AP + o.AP,
		MP:               s.MP + o.MP,
		WP:               s.WP + o.WP,
		RA:               s.RA + o.RA,
		CriticalHit:      s.CriticalHit + o.CriticalHit,
		CriticalMastery:  s.CriticalMastery + o.CriticalMastery,
		ElementalMastery: s.ElementalMastery + o.ElementalMastery,
		FireMastery:      s.FireMastery + o.FireMastery,
		WaterMastery:     s.WaterMastery + o.WaterMastery,
		AirMastery:       s.AirMastery + o.AirMastery,
		EarthMastery:     s.EarthMastery + o.EarthMastery,
		Mastery1Element:  s.Mastery1Element + o.Mastery1Element,
		Mastery2Elements: s.Mastery2Elements + o.Mastery2Elements,
		Mastery3Elements: s.Mastery3Elements + o.Mastery3Elements,
		DistanceMastery:  s.DistanceMastery + o.DistanceMastery,
		RearMastery:      s.RearMastery + o.RearMastery,
		MeleeMastery:     s.MeleeMastery + o.MeleeMastery,
		BerserkMastery:   s.BerserkMastery + o.BerserkMastery,
		HealingMastery:   s.HealingMastery + o.HealingMastery,
		Block:            s.Block + o.Block,
		Lock:             s.Lock + o.Lock,
		Dodge:            s.Dodge + o.Dodge,
		HP:               s.HP + o.HP,
		Control:          s.Control + o.Control,
		FireResistance:   s.FireResistance + o.FireResistance,
		WaterResistance:  s.WaterResistance + o.WaterResistance,
		AirResistance:    s.AirResistance + o.AirResistance,
		EarthResistance:  s.EarthResistance + o.EarthResistance,
		FinalDamage:      s.FinalDamage + o.FinalDamage,
		HealsPerformed:   s.HealsPerformed + o.HealsPerformed,
	}
}

// Sub returns the element-wise difference s - o.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		AP:               s.AP - o.AP,
		MP:               s.MP - o.MP,
		WP:               s.WP - o.WP,
		RA:               s.RA - o.RA,
		CriticalHit:      s.CriticalHit - o.CriticalHit,
		CriticalMastery:  s.CriticalMastery - o.CriticalMastery,
		ElementalMastery: s.ElementalMastery - o.ElementalMastery,
		FireMastery:      s.FireMastery - o.FireMastery,
		WaterMastery:     s.WaterMastery - o.WaterMastery,
		AirMastery:       s.AirMastery - o.AirMastery,
		EarthMastery:     s.EarthMastery - o.EarthMastery,
		Mastery1Element:  s.Mastery1Element - o.Mastery1Element,
		Mastery2Elements: s.Mastery2Elements - o.Mastery2Elements,
		Mastery3Elements: s.Mastery3Elements - o.Mastery3Elements,
		DistanceMastery:  s.DistanceMastery - o.DistanceMastery,
		RearMastery:      s.RearMastery - o.RearMastery,
		MeleeMastery:     s.MeleeMastery - o.MeleeMastery,
		BerserkMastery:   s.BerserkMastery - o.BerserkMastery,
		HealingMastery:   s.HealingMastery - o.HealingMastery,
		Block:            s.Block - o.Block,
		Lock:             s.Lock - o.Lock,
		Dodge:            s.Dodge - o.Dodge,
		HP:               s.HP - o.HP,
		Control:          s.Control - o.Control,
		FireResistance:   s.FireResistance - o.FireResistance,
		WaterResistance:  s.WaterResistance - o.WaterResistance,
		AirResistance:    s.AirResistance - o.AirResistance,
		EarthResistance:  s.EarthResistance - o.EarthResistance,
		FinalDamage:      s.FinalDamage - o.FinalDamage,
		HealsPerformed:   s.HealsPerformed - o.HealsPerformed,
	}
}

// SecondarySum returns the sum of the one/two/three-element mastery fields,
// used by score.NeutralityFDMod's gate (Inflexibility II / Neutrality) to
// detect sets with no partial-element investment.
func (s Stats) SecondarySum() int {
	return s.Mastery1Element + s.Mastery2Elements + s.Mastery3Elements
}
