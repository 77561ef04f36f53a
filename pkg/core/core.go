package core

import (
	"context"
	"math/big"

	"github.com/varalys/digitfactor/internal/engine"
	"github.com/varalys/digitfactor/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Config            = engine.Config
	Result            = engine.Result
	IterationStats    = engine.IterationStats
	InvalidInputError = engine.InvalidInputError
	LimitError        = engine.LimitError
	Pair              = types.Pair
	Event             = types.Event
	EventKind         = types.EventKind
)

const (
	EventIterationStart    = types.EventIterationStart
	EventCandidateAccepted = types.EventCandidateAccepted
	EventIterationDone     = types.EventIterationDone
	EventVerifyStart       = types.EventVerifyStart
	EventVerified          = types.EventVerified
	EventDone              = types.EventDone
)

var (
	ErrInvalidInput  = engine.ErrInvalidInput
	ErrFrontierLimit = engine.ErrFrontierLimit
	ErrTimeBudget    = engine.ErrTimeBudget
)

// Parse converts user input into a non-negative integer.
func Parse(s string) (*big.Int, error) { return engine.ParseInput(s) }

// Factor is the stable entrypoint for other programs.
func Factor(ctx context.Context, n *big.Int, cfg Config) ([]Pair, error) {
	return engine.Factor(ctx, n, cfg)
}

// FactorWithStats is Factor plus per-iteration statistics.
func FactorWithStats(ctx context.Context, n *big.Int, cfg Config) (Result, error) {
	return engine.FactorWithStats(ctx, n, cfg)
}
