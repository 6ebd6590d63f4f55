package gearsolve

import (
	"github.com/relicware/gearsolve/internal/solver/telemetry"
	"github.com/relicware/gearsolve/internal/solver/topk"
)

// Result is the outcome of a successful Solve call: the run's
// correlation id, for log/progress-callback correlation, and its ranked
// top-K candidate sets, score-descending (spec.md §4.8). In dry-run mode
// Sets holds exactly one pseudo-result carrying the deduplicated
// candidate-item union instead of a ranked set (SPEC_FULL Supplemented
// Feature #8).
type Result struct {
	RunID telemetry.RunID
	Sets  []topk.Result
}
