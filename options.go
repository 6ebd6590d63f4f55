package gearsolve

import (
	"go.uber.org/zap"

	"github.com/relicware/gearsolve/internal/solver/telemetry"
)

// Option configures an optional aspect of a Solve call.
type Option func(*solveParams)

type solveParams struct {
	logger   *zap.Logger
	onUpdate telemetry.ProgressFunc
}

// WithLogger attaches a structured logger to a solve run. Solve defaults
// to zap.NewNop() when no logger is supplied.
func WithLogger(logger *zap.Logger) Option {
	return func(p *solveParams) { p.logger = logger }
}

// WithProgress registers a callback invoked on every phase transition and
// per-pair checkpoint during search (spec.md §5: "Suspension points: only
// progress callbacks").
func WithProgress(fn telemetry.ProgressFunc) Option {
	return func(p *solveParams) { p.onUpdate = fn }
}
