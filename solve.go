// Package gearsolve computes score-optimal Dofus gear sets for a given
// character configuration, implementing the Configuring -> PoolBuild ->
// Feasibility -> PairEnumerate -> Search -> Rank -> Done pipeline
// described by spec.md's state machine (§2).
package gearsolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/feasibility"
	"github.com/relicware/gearsolve/internal/solver/item"
	"github.com/relicware/gearsolve/internal/solver/score"
	"github.com/relicware/gearsolve/internal/solver/search"
	"github.com/relicware/gearsolve/internal/solver/stats"
	"github.com/relicware/gearsolve/internal/solver/telemetry"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

// topKSize is the fixed global top-K width spec.md §4.8/§9 fixes at 5.
const topKSize = 5

// resolveForced looks up cfg.ForcedItemIDs in byID, returning
// ErrConfigError if any forced id is absent from the catalog.
func resolveForced(cfg config.SolveConfig, byID map[item.ID]item.Item) ([]item.Item, error) {
	forced := make([]item.Item, 0, len(cfg.ForcedItemIDs))
	for _, id := range cfg.ForcedItemIDs {
		it, ok := byID[item.ID(id)]
		if !ok {
			return nil, fmt.Errorf("%w: forced item %d not found in catalog", config.ErrConfigError, id)
		}
		forced = append(forced, it)
	}
	return forced, nil
}

func catalogIndex(catalog []item.Item) map[item.ID]item.Item {
	byID := make(map[item.ID]item.Item, len(catalog))
	for _, it := range catalog {
		byID[it.ID] = it
	}
	return byID
}

func forbiddenItemIDs(cfg config.SolveConfig) []item.ID {
	out := make([]item.ID, len(cfg.ForbiddenItemIDs))
	for i, id := range cfg.ForbiddenItemIDs {
		out[i] = item.ID(id)
	}
	return out
}

// checkForcedWeaponConflict rejects a forced two-handed first weapon
// alongside a forced second-weapon item: the two-hander disables the
// second-weapon slot entirely, so wearing both is never reachable
// (spec.md §8 scenario 5).
func checkForcedWeaponConflict(forced []item.Item) error {
	disables := false
	hasSecondWeapon := false
	for _, it := range forced {
		if it.DisablesSecondWeapon {
			disables = true
		}
		if it.Slot == stats.SecondWeapon {
			hasSecondWeapon = true
		}
	}
	if disables && hasSecondWeapon {
		return fmt.Errorf("%w: forced two-handed weapon disables the forced second-weapon slot", feasibility.ErrInfeasible)
	}
	return nil
}

// Solve runs a complete gear-set search: it validates cfg, proves the
// requested stat minimums are reachable before committing to a search,
// builds per-slot candidate pools, enumerates and ranks relic/epic
// pairs, then runs the per-pair search kernel and merges results into a
// single top-K (spec.md §2, §4).
//
// catalog is the full decoded item list; decoding it from disk or a
// remote source is the caller's responsibility.
func Solve(ctx context.Context, cfg config.SolveConfig, catalog []item.Item, opts ...Option) (Result, error) {
	p := solveParams{logger: zap.NewNop()}
	for _, o := range opts {
		o(&p)
	}
	reporter := telemetry.NewReporter(p.logger, p.onUpdate)

	reporter.Phase(telemetry.PhaseConfiguring, "validating config")
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	byID := catalogIndex(catalog)
	forced, err := resolveForced(cfg, byID)
	if err != nil {
		return Result{}, err
	}
	if err := checkForcedWeaponConflict(forced); err != nil {
		return Result{}, err
	}
	for _, it := range forced {
		if err := feasibility.CheckItemCondition(it.ID, cfg.SetMinimums); err != nil {
			return Result{}, err
		}
	}

	baseStats := score.ApplyBasePassives(cfg.BaseStats, cfg.Level, cfg.Class, cfg.ActivePassives, cfg.ActiveSublimations)

	reporter.Phase(telemetry.PhaseFeasibility, "proving stat minimums reachable")
	occ := occupancyFor(forced)
	fin := feasibility.Input{
		Level:            cfg.Level,
		AllowedRarities:  cfg.AllowedRarities,
		ForbiddenItemIDs: forbiddenItemIDs(cfg),
		BaseStats:        baseStats,
		Mins:             cfg.SetMinimums,
		Occupancy:        occ.feasibility,
	}

	apmp, err := feasibility.CheckAPMPReachability(fin)
	if err != nil {
		return Result{}, err
	}
	if apmp.ForceEternalSword {
		sword, ok := byID[feasibility.EternalSwordCandidateID]
		if !ok {
			return Result{}, fmt.Errorf("%w: eternal sword %d required but absent from catalog", config.ErrConfigError, feasibility.EternalSwordCandidateID)
		}
		forced = append(forced, sword)
		occ = occupancyFor(forced)
		fin.Occupancy = occ.feasibility
	}

	if err := feasibility.CheckPerStatReachability(fin); err != nil {
		return Result{}, err
	}

	slack := feasibility.APMPSlack(fin)

	scoreOpts := score.Options{Unraveling: cfg.Unraveling}
	if cfg.Tuning.ElementalismAware && score.ElementalismBonus(baseStats) {
		scoreOpts.FDBonus = 0.30
	}

	reporter.Phase(telemetry.PhasePoolBuild, "building per-slot candidate pools")
	pools := buildPools(cfg, catalog, baseStats, scoreOpts, slack)
	cfg.SkipShields = cfg.SkipShields || cfg.Tuning.SkipShields

	reporter.Phase(telemetry.PhasePairEnumerate, "enumerating relic/epic pairs")
	candidatePairs := buildCandidatePairs(cfg, catalog, byID, pools, forced, baseStats, scoreOpts, slack)

	if cfg.DryRun {
		reporter.Phase(telemetry.PhaseDone, "dry run complete")
		return Result{RunID: reporter.RunID, Sets: []topk.Result{dryRunResult(forced, candidatePairs, pools)}}, nil
	}

	reporter.Phase(telemetry.PhaseSearch, "searching candidate sets")
	searchCtx := search.Context{
		Config:    cfg,
		BaseStats: baseStats,
		Pools:     pools,
		Forced:    forced,
		Options:   scoreOpts,
	}
	results := search.SolveAll(ctx, searchCtx, candidatePairs, topKSize, reporter)

	reporter.Phase(telemetry.PhaseRank, "ranking top-k results")
	if len(results) == 0 {
		return Result{}, ErrNoSolution
	}

	reporter.Phase(telemetry.PhaseDone, "solve complete")
	return Result{RunID: reporter.RunID, Sets: results}, nil
}
