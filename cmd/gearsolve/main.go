// Package main provides the gearsolve CLI: loads an on-disk item
// catalog and a character configuration, runs a gear-set search, and
// prints the ranked top-K result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	gearsolve "github.com/relicware/gearsolve"
	"github.com/relicware/gearsolve/internal/config"
	"github.com/relicware/gearsolve/internal/observability"
	"github.com/relicware/gearsolve/internal/solver/catalog"
	solverconfig "github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/stats"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	catalogDir := flag.String("catalog", "", "path to item catalog YAML directory (overrides config)")
	level := flag.Int("level", 230, "character level, 1-230")
	class := flag.String("class", string(stats.Iop), "character class")
	ap := flag.Int("ap", stats.DummyMin, "minimum total ap")
	mp := flag.Int("mp", stats.DummyMin, "minimum total mp")
	wp := flag.Int("wp", stats.DummyMin, "minimum total wp")
	ra := flag.Int("ra", stats.DummyMin, "minimum total ra")
	rarities := flag.String("rarities", "", "comma-separated allowed rarity names (default: all)")
	forced := flag.String("forced", "", "comma-separated forced item ids")
	forbidden := flag.String("forbidden", "", "comma-separated forbidden item ids")
	dryRun := flag.Bool("dry-run", false, "skip search, print the candidate item union")
	exhaustive := flag.Bool("exhaustive", false, "disable the adaptive pair hard cap")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *catalogDir != "" {
		cfg.Catalog.Dir = *catalogDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	items, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("items", len(items)), zap.String("dir", cfg.Catalog.Dir))

	tuning := solverconfig.DefaultTuning()
	if cfg.Tuning.Path != "" {
		tuning, err = solverconfig.LoadTuning(cfg.Tuning.Path)
		if err != nil {
			logger.Fatal("loading tuning config", zap.Error(err))
		}
	}
	tuning.Exhaustive = tuning.Exhaustive || *exhaustive

	mins := stats.NewSetMinimums()
	mins.AP, mins.MP, mins.WP, mins.RA = *ap, *mp, *wp, *ra

	solveCfg := solverconfig.SolveConfig{
		Level:            *level,
		SetMinimums:      mins,
		SetMaximums:      stats.NewSetMaximums(),
		Priority:         stats.DefaultStatPriority(),
		Class:            stats.Class(*class),
		Tuning:           tuning,
		ForcedItemIDs:    parseIDs(*forced),
		ForbiddenItemIDs: parseIDs(*forbidden),
		AllowedRarities:  parseRarities(*rarities),
		DryRun:           *dryRun,
		Exhaustive:       *exhaustive,
	}

	result, err := gearsolve.Solve(context.Background(), solveCfg, items, gearsolve.WithLogger(logger))
	if err != nil {
		logger.Fatal("solve failed", zap.Error(err))
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stdout, "run %s: %d result(s) in %s\n", result.RunID, len(result.Sets), elapsed.Round(time.Millisecond))
	for i, set := range result.Sets {
		ids := make([]string, len(set.Items))
		for j, id := range set.Items {
			ids[j] = strconv.Itoa(int(id))
		}
		fmt.Fprintf(os.Stdout, "  #%d score=%.2f items=[%s]\n", i+1, set.Score, strings.Join(ids, ","))
	}
}

func parseIDs(csv string) []int {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			log.Fatalf("invalid item id %q: %v", p, err)
		}
		ids = append(ids, id)
	}
	return ids
}

var rarityNames = map[string]stats.Rarity{
	"common": stats.Common, "uncommon": stats.Uncommon, "mythic": stats.Mythic,
	"legendary": stats.Legendary, "relic": stats.Relic, "souvenir": stats.Souvenir,
	"epic": stats.Epic,
}

func parseRarities(csv string) []stats.Rarity {
	if csv == "" {
		return []stats.Rarity{
			stats.Common, stats.Uncommon, stats.Mythic, stats.Legendary,
			stats.Relic, stats.Souvenir, stats.Epic,
		}
	}
	parts := strings.Split(csv, ",")
	out := make([]stats.Rarity, 0, len(parts))
	for _, p := range parts {
		r, ok := rarityNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			log.Fatalf("unknown rarity %q", p)
		}
		out = append(out, r)
	}
	return out
}
