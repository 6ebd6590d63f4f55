// Package catalog loads the on-disk item catalog gearsolve.Solve draws
// its candidate pools from: a directory of YAML files, one record per
// item, unmarshalled into the solver's internal item.Item representation.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

// ItemDef is an item record as it appears on disk, before being folded
// into the solver's fixed-width item.Item/stats.Stats representation.
type ItemDef struct {
	ID                   int    `yaml:"id"`
	Name                 string `yaml:"name"`
	Slot                 string `yaml:"slot"`
	Level                int    `yaml:"level"`
	Rarity               int    `yaml:"rarity"`
	TypeID               int    `yaml:"type_id"`
	DisablesSecondWeapon bool   `yaml:"disables_second_weapon"`

	Stats StatsDef `yaml:"stats"`
}

// StatsDef mirrors stats.Stats' fields for YAML decoding; only the
// subset an item actually carries need be present in its file.
type StatsDef struct {
	AP int `yaml:"ap"`
	MP int `yaml:"mp"`
	WP int `yaml:"wp"`
	RA int `yaml:"ra"`

	CriticalHit     int `yaml:"critical_hit"`
	CriticalMastery int `yaml:"critical_mastery"`

	ElementalMastery int `yaml:"elemental_mastery"`
	FireMastery      int `yaml:"fire_mastery"`
	WaterMastery     int `yaml:"water_mastery"`
	AirMastery       int `yaml:"air_mastery"`
	EarthMastery     int `yaml:"earth_mastery"`

	Mastery1Element  int `yaml:"mastery_1_element"`
	Mastery2Elements int `yaml:"mastery_2_elements"`
	Mastery3Elements int `yaml:"mastery_3_elements"`

	DistanceMastery int `yaml:"distance_mastery"`
	RearMastery     int `yaml:"rear_mastery"`
	MeleeMastery    int `yaml:"melee_mastery"`
	BerserkMastery  int `yaml:"berserk_mastery"`
	HealingMastery  int `yaml:"healing_mastery"`

	Block int `yaml:"block"`
	Lock  int `yaml:"lock"`
	Dodge int `yaml:"dodge"`

	HP      int `yaml:"hp"`
	Control int `yaml:"control"`

	FireResistance  int `yaml:"fire_resistance"`
	WaterResistance int `yaml:"water_resistance"`
	AirResistance   int `yaml:"air_resistance"`
	EarthResistance int `yaml:"earth_resistance"`

	FinalDamage    int `yaml:"final_damage"`
	HealsPerformed int `yaml:"heals_performed"`
}

// AsStats converts a decoded StatsDef into the solver's stats.Stats.
func (s StatsDef) AsStats() stats.Stats {
	return stats.Stats{
		AP: s.AP, MP: s.MP, WP: s.WP, RA: s.RA,
		CriticalHit: s.CriticalHit, CriticalMastery: s.CriticalMastery,
		ElementalMastery: s.ElementalMastery,
		FireMastery:      s.FireMastery, WaterMastery: s.WaterMastery,
		AirMastery: s.AirMastery, EarthMastery: s.EarthMastery,
		Mastery1Element: s.Mastery1Element, Mastery2Elements: s.Mastery2Elements,
		Mastery3Elements: s.Mastery3Elements,
		DistanceMastery:  s.DistanceMastery, RearMastery: s.RearMastery,
		MeleeMastery: s.MeleeMastery, BerserkMastery: s.BerserkMastery,
		HealingMastery: s.HealingMastery,
		Block:          s.Block, Lock: s.Lock, Dodge: s.Dodge,
		HP: s.HP, Control: s.Control,
		FireResistance: s.FireResistance, WaterResistance: s.WaterResistance,
		AirResistance: s.AirResistance, EarthResistance: s.EarthResistance,
		FinalDamage: s.FinalDamage, HealsPerformed: s.HealsPerformed,
	}
}

var validSlots = map[string]stats.Slot{
	string(stats.FirstWeapon):  stats.FirstWeapon,
	string(stats.SecondWeapon): stats.SecondWeapon,
	string(stats.Head):         stats.Head,
	string(stats.Chest):        stats.Chest,
	string(stats.Legs):         stats.Legs,
	string(stats.Belt):         stats.Belt,
	string(stats.Back):         stats.Back,
	string(stats.Shoulders):    stats.Shoulders,
	string(stats.Neck):         stats.Neck,
	string(stats.LeftHand):     stats.LeftHand,
	string(stats.Accessory):    stats.Accessory,
	string(stats.Mount):        stats.Mount,
	string(stats.Pet):          stats.Pet,
	string(stats.Costume):      stats.Costume,
}

// Validate reports an error if def is missing required fields or
// contains illegal values.
//
// Precondition: def is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (def *ItemDef) Validate() error {
	var errs []error
	if def.ID == 0 {
		errs = append(errs, errors.New("id must be non-zero"))
	}
	if def.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := validSlots[def.Slot]; !ok {
		errs = append(errs, fmt.Errorf("slot %q is not a valid item slot", def.Slot))
	}
	if def.Rarity < int(stats.Common) || def.Rarity > int(stats.Epic) {
		errs = append(errs, fmt.Errorf("rarity %d is out of range [%d,%d]", def.Rarity, stats.Common, stats.Epic))
	}
	if def.Level < 1 {
		errs = append(errs, errors.New("level must be >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// AsItem folds a validated ItemDef into the solver's item.Item.
func (def *ItemDef) AsItem() item.Item {
	return item.Item{
		ID:                   item.ID(def.ID),
		Name:                 def.Name,
		Slot:                 validSlots[def.Slot],
		Level:                def.Level,
		Rarity:               stats.Rarity(def.Rarity),
		TypeID:               def.TypeID,
		DisablesSecondWeapon: def.DisablesSecondWeapon,
		Attributes:           def.Stats.AsStats(),
	}
}

// Load reads every .yaml file in dir and returns the decoded item
// catalog as a flat []item.Item, ready to pass to gearsolve.Solve.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil slice and nil error on success; every
// returned item passed ItemDef.Validate before conversion.
func Load(dir string) ([]item.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: cannot read directory %q: %w", dir, err)
	}

	var items []item.Item
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog.Load: cannot read file %q: %w", path, err)
		}

		var defs []ItemDef
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("catalog.Load: cannot parse file %q: %w", path, err)
		}
		for i := range defs {
			if err := defs[i].Validate(); err != nil {
				return nil, fmt.Errorf("catalog.Load: invalid item in %q: %w", path, err)
			}
			items = append(items, defs[i].AsItem())
		}
	}
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}
