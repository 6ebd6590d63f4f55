package gearsolve

import (
	"errors"

	"github.com/relicware/gearsolve/internal/solver/config"
	"github.com/relicware/gearsolve/internal/solver/feasibility"
)

// ErrNoSolution is returned when the search kernel completes without any
// candidate set satisfying the requested bounds. Distinct from
// ErrInfeasible, which the feasibility analyzer proves or refutes before
// search ever starts (spec.md §7).
var ErrNoSolution = errors.New("gearsolve: no solution")

// ErrInfeasible and ErrConfigError re-export the feasibility/config
// packages' sentinels so callers outside this module can errors.Is
// against them without reaching into internal packages.
var (
	ErrInfeasible  = feasibility.ErrInfeasible
	ErrConfigError = config.ErrConfigError
)
