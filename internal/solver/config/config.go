// Package config provides Viper-based configuration loading for the solver's
// tuning knobs, following the same Load/Validate shape as the teacher's
// internal/config package.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/relicware/gearsolve/internal/solver/stats"
)

// ToleranceEntry is one (level, tolerance) breakpoint in the level-window
// table (spec.md §6: "tolerance per-level map (min 14 at level 230)").
type ToleranceEntry struct {
	Level     int `mapstructure:"level"`
	Tolerance int `mapstructure:"tolerance"`
}

// TuningConfig holds the solver's search-depth and level-window knobs.
type TuningConfig struct {
	// Tolerance is a sorted (ascending level) table of level-window widths.
	// ToleranceFor(level) picks the entry for the nearest level at or
	// below the given level.
	Tolerance []ToleranceEntry `mapstructure:"tolerance"`

	HardCapDepth int  `mapstructure:"hard_cap_depth"`
	SearchDepth  int  `mapstructure:"search_depth"`
	Exhaustive   bool `mapstructure:"exhaustive"`
	SkipShields  bool `mapstructure:"skip_shields"`

	// ElementalismAware gates SPEC_FULL Supplemented Feature #7 (the
	// "double damage only shards are damage" FD/heal bonus for sets with
	// no partial-element investment). Defaults to true, matching the
	// original's unconditional application.
	ElementalismAware bool `mapstructure:"elementalism_aware"`
}

// ToleranceFor returns the level-window width for the given character
// level: the Tolerance width from the highest breakpoint at or below
// level, or the first entry's width if level is below every breakpoint.
func (t TuningConfig) ToleranceFor(level int) int {
	if len(t.Tolerance) == 0 {
		return 0
	}
	best := t.Tolerance[0]
	for _, e := range t.Tolerance {
		if e.Level <= level && e.Level >= best.Level {
			best = e
		}
	}
	return best.Tolerance
}

// Validate checks TuningConfig's invariants.
//
// Postcondition: Returns nil iff HardCapDepth and SearchDepth are
// non-negative and every Tolerance entry has a level in 1..230 and a
// non-negative tolerance.
func (t TuningConfig) Validate() error {
	var errs []string
	if t.HardCapDepth < 0 {
		errs = append(errs, fmt.Sprintf("hard_cap_depth must be >= 0, got %d", t.HardCapDepth))
	}
	if t.SearchDepth < 0 {
		errs = append(errs, fmt.Sprintf("search_depth must be >= 0, got %d", t.SearchDepth))
	}
	for _, e := range t.Tolerance {
		if e.Level < 1 || e.Level > 230 {
			errs = append(errs, fmt.Sprintf("tolerance entry level must be 1-230, got %d", e.Level))
		}
		if e.Tolerance < 0 {
			errs = append(errs, fmt.Sprintf("tolerance entry tolerance must be >= 0, got %d", e.Tolerance))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("tuning config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultToleranceTable is the standard ALS-bracket tolerance map: wide
// windows at low level, narrowing to 14 at level 230 (spec.md §6).
func DefaultToleranceTable() []ToleranceEntry {
	return []ToleranceEntry{
		{Level: 1, Tolerance: 100},
		{Level: 20, Tolerance: 80},
		{Level: 35, Tolerance: 65},
		{Level: 50, Tolerance: 50},
		{Level: 65, Tolerance: 45},
		{Level: 80, Tolerance: 40},
		{Level: 100, Tolerance: 35},
		{Level: 125, Tolerance: 30},
		{Level: 140, Tolerance: 25},
		{Level: 155, Tolerance: 22},
		{Level: 170, Tolerance: 20},
		{Level: 185, Tolerance: 18},
		{Level: 200, Tolerance: 16},
		{Level: 215, Tolerance: 14},
		{Level: 230, Tolerance: 14},
	}
}

// DefaultTuning returns the tuning defaults named in spec.md §6.
func DefaultTuning() TuningConfig {
	return TuningConfig{
		Tolerance:         DefaultToleranceTable(),
		HardCapDepth:      35,
		SearchDepth:       1,
		Exhaustive:        false,
		SkipShields:       true,
		ElementalismAware: true,
	}
}

// LoadTuning reads TuningConfig from the given YAML file path, applying
// GEARSOLVE_-prefixed environment overrides on top of file values and
// solver defaults, then validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid TuningConfig or a non-nil error.
func LoadTuning(path string) (TuningConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("GEARSOLVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return TuningConfig{}, fmt.Errorf("reading tuning config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a TuningConfig from an already-configured Viper
// instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid TuningConfig or a non-nil error.
func LoadFromViper(v *viper.Viper) (TuningConfig, error) {
	var cfg TuningConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return TuningConfig{}, fmt.Errorf("unmarshalling tuning config: %w", err)
	}
	if len(cfg.Tolerance) == 0 {
		cfg.Tolerance = DefaultToleranceTable()
	}
	if err := cfg.Validate(); err != nil {
		return TuningConfig{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultTuning()
	v.SetDefault("hard_cap_depth", d.HardCapDepth)
	v.SetDefault("search_depth", d.SearchDepth)
	v.SetDefault("exhaustive", d.Exhaustive)
	v.SetDefault("skip_shields", d.SkipShields)
	v.SetDefault("elementalism_aware", d.ElementalismAware)
}

// SolveConfig is the immutable input to a single solve call (spec.md §3).
type SolveConfig struct {
	Level        int
	BaseStats    stats.Stats
	SetMinimums  stats.SetMinimums
	SetMaximums  stats.SetMaximums
	Priority     stats.StatPriority
	Class        stats.Class
	Tuning       TuningConfig

	ForcedItemIDs    []int
	ForbiddenItemIDs []int
	ForbiddenNames   []string
	AllowedRarities  []stats.Rarity

	// ActivePassives and ActiveSublimations are the closed, numeric sets
	// named in spec.md §4.3. IDs follow the original catalog's numbering
	// (e.g. 20003 == Motivation), documented in the score package.
	ActivePassives     []int
	ActiveSublimations []int

	TwoHanded           bool
	SkipShields         bool
	UseLightWeaponExpert bool
	Unraveling          bool
	DryRun              bool
	Exhaustive          bool
}

// LowBound returns the lowest equippable item level given the config's
// level and tuning tolerance: max(level - tolerance, 1).
func (c SolveConfig) LowBound() int {
	low := c.Level - c.Tuning.ToleranceFor(c.Level)
	if low < 1 {
		return 1
	}
	return low
}

// AllowsRarity reports whether r is in the config's allowed-rarity set.
func (c SolveConfig) AllowsRarity(r stats.Rarity) bool {
	for _, ar := range c.AllowedRarities {
		if ar == r {
			return true
		}
	}
	return false
}

// Validate checks SolveConfig's structural invariants (spec.md §7:
// ConfigError). It does not attempt feasibility analysis — that is the
// feasibility package's job.
//
// Postcondition: Returns nil iff Level is in [1,230], AllowedRarities is
// non-empty, and no item id appears in both ForcedItemIDs and
// ForbiddenItemIDs.
func (c SolveConfig) Validate() error {
	var errs []string
	if c.Level < 1 || c.Level > 230 {
		errs = append(errs, fmt.Sprintf("level must be 1-230, got %d", c.Level))
	}
	if len(c.AllowedRarities) == 0 {
		errs = append(errs, "allowed_rarities must not be empty")
	}
	forced := make(map[int]bool, len(c.ForcedItemIDs))
	for _, id := range c.ForcedItemIDs {
		forced[id] = true
	}
	for _, id := range c.ForbiddenItemIDs {
		if forced[id] {
			errs = append(errs, fmt.Sprintf("item id %d is both forced and forbidden", id))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigError, strings.Join(errs, "; "))
	}
	return nil
}

// ErrConfigError is the sentinel wrapped by SolveConfig.Validate failures,
// matching spec.md §7's ConfigError exit kind.
var ErrConfigError = errors.New("gearsolve: config error")
