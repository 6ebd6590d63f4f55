// Package telemetry provides the solver's structured logger and the
// progress callback types the search kernel reports phase transitions
// through, following the teacher's internal/observability.NewLogger shape.
package telemetry

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig holds the same two knobs as the teacher's
// internal/config.LoggingConfig.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewLogger creates a structured logger for a solve run.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Phase names one of the solve state machine's stages (spec.md §2).
type Phase string

const (
	PhaseConfiguring   Phase = "configuring"
	PhasePoolBuild     Phase = "pool_build"
	PhaseFeasibility   Phase = "feasibility"
	PhasePairEnumerate Phase = "pair_enumerate"
	PhaseSearch        Phase = "search"
	PhaseRank          Phase = "rank"
	PhaseDone          Phase = "done"
)

// RunID correlates every log line and progress event in a single Solve call.
type RunID string

// NewRunID mints a fresh correlation id for a solve run.
func NewRunID() RunID { return RunID(uuid.NewString()) }

// Progress is one phase-transition or within-phase checkpoint event.
// Search emits these at Debug granularity per relic/epic pair and at Info
// granularity on phase transitions.
type Progress struct {
	RunID   RunID
	Phase   Phase
	Message string

	// PairsTotal/PairsDone describe progress through the relic/epic pair
	// enumeration during PhaseSearch; both are zero outside that phase.
	PairsTotal int
	PairsDone  int
}

// ProgressFunc receives Progress events during a solve. A nil ProgressFunc
// is valid and simply means no caller is listening.
type ProgressFunc func(Progress)

// Reporter bundles a logger and an optional progress callback, giving
// every solver component a single argument to thread through instead of
// two.
type Reporter struct {
	Logger   *zap.Logger
	RunID    RunID
	OnUpdate ProgressFunc
}

// NewReporter builds a Reporter for a fresh run.
func NewReporter(logger *zap.Logger, onUpdate ProgressFunc) Reporter {
	return Reporter{Logger: logger, RunID: NewRunID(), OnUpdate: onUpdate}
}

// Phase logs an Info-level phase transition and forwards it to OnUpdate.
func (r Reporter) Phase(phase Phase, msg string) {
	r.Logger.Info(msg,
		zap.String("run_id", string(r.RunID)),
		zap.String("phase", string(phase)),
	)
	if r.OnUpdate != nil {
		r.OnUpdate(Progress{RunID: r.RunID, Phase: phase, Message: msg})
	}
}

// PairProgress logs a Debug-level per-pair checkpoint during PhaseSearch.
func (r Reporter) PairProgress(done, total int) {
	r.Logger.Debug("evaluated relic/epic pair",
		zap.String("run_id", string(r.RunID)),
		zap.Int("done", done),
		zap.Int("total", total),
	)
	if r.OnUpdate != nil {
		r.OnUpdate(Progress{
			RunID:      r.RunID,
			Phase:      PhaseSearch,
			PairsTotal: total,
			PairsDone:  done,
		})
	}
}

// Warn logs a Warn-level event, e.g. adaptive tolerance-window truncation.
func (r Reporter) Warn(msg string, fields ...zap.Field) {
	fields = append(fields, zap.String("run_id", string(r.RunID)))
	r.Logger.Warn(msg, fields...)
}
