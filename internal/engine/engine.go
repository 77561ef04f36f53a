package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/varalys/digitfactor/internal/types"
	"go.uber.org/zap"
)

// Config controls a search: parallelism, resource ceilings and the optional
// progress hook. The zero value runs sequentially without limits.
type Config struct {
	Workers     int           // <= 1 runs sequentially
	MaxFrontier int           // 0 = unlimited
	TimeBudget  time.Duration // 0 = unlimited
	Progress    func(types.Event)
	Logger      *zap.Logger
}

func (c Config) validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("invalid config: workers must be >= 0, got %d", c.Workers)
	case c.MaxFrontier < 0:
		return fmt.Errorf("invalid config: max frontier must be >= 0, got %d", c.MaxFrontier)
	case c.TimeBudget < 0:
		return fmt.Errorf("invalid config: time budget must be >= 0, got %s", c.TimeBudget)
	}
	return nil
}

// IterationStats describes one digit iteration.
type IterationStats struct {
	Digit    int
	Frontier int // pairs expanded
	Accepted int // pairs carried to the next iteration
	Duration time.Duration
}

// Result contains the verified pairs and basic search statistics.
type Result struct {
	N            *big.Int
	Digits       int
	Pairs        []types.Pair
	Rejected     int
	PeakFrontier int
	Iterations   []IterationStats
	Duration     time.Duration
}

var nowFunc = time.Now

// Factor runs a search and returns only the verified pairs.
func Factor(ctx context.Context, n *big.Int, cfg Config) ([]types.Pair, error) {
	res, err := FactorWithStats(ctx, n, cfg)
	if err != nil {
		return nil, err
	}
	return res.Pairs, nil
}

// FactorString parses s with ParseInput and runs a search on the result.
func FactorString(ctx context.Context, s string, cfg Config) (Result, error) {
	n, err := ParseInput(s)
	if err != nil {
		return Result{}, err
	}
	return FactorWithStats(ctx, n, cfg)
}

// FactorWithStats runs a search and returns the verified pairs along with
// per-iteration statistics. On any failure no partial result is returned.
func FactorWithStats(ctx context.Context, n *big.Int, cfg Config) (Result, error) {
	if n == nil {
		return Result{}, &InvalidInputError{Reason: "missing value"}
	}
	if n.Sign() < 0 {
		return Result{}, &InvalidInputError{Input: n.String(), Reason: "cannot factorize a negative integer"}
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	emit := cfg.Progress
	if emit == nil {
		emit = func(types.Event) {}
	}

	started := nowFunc()
	s := &search{
		n:       new(big.Int).Set(n),
		workers: cfg.Workers,
		emit:    emit,
	}
	if cfg.TimeBudget > 0 {
		s.deadline = started.Add(cfg.TimeBudget)
	}

	result := Result{N: s.n, Digits: DigitLength(s.n)}
	frontier := []types.Pair{types.NewPair(0, 0)}
	place := big.NewInt(1)
	for digitIndex := 0; digitIndex < result.Digits; digitIndex++ {
		digit := digitIndex + 1
		iterStarted := nowFunc()
		emit(types.Event{Kind: types.EventIterationStart, Digit: digit})

		next, err := s.iterate(ctx, newStep(digit, place, s.n), frontier)
		if err != nil {
			if errors.Is(err, ErrTimeBudget) {
				err = &LimitError{Err: ErrTimeBudget, Digit: digit, Frontier: len(frontier)}
			}
			log.Debug("search aborted", zap.Int("digit", digit), zap.Int("frontier", len(frontier)), zap.Error(err))
			return Result{}, err
		}
		emit(types.Event{Kind: types.EventIterationDone, Digit: digit, Count: len(next)})

		stats := IterationStats{
			Digit:    digit,
			Frontier: len(frontier),
			Accepted: len(next),
			Duration: nowFunc().Sub(iterStarted),
		}
		result.Iterations = append(result.Iterations, stats)
		log.Debug("digit iteration complete",
			zap.Int("digit", stats.Digit),
			zap.Int("frontier", stats.Frontier),
			zap.Int("accepted", stats.Accepted),
			zap.Duration("elapsed", stats.Duration))

		if cfg.MaxFrontier > 0 && len(next) > cfg.MaxFrontier {
			return Result{}, &LimitError{Err: ErrFrontierLimit, Digit: digit, Frontier: len(next)}
		}
		if len(next) > result.PeakFrontier {
			result.PeakFrontier = len(next)
		}
		frontier = next
		place = new(big.Int).Mul(place, ten)
	}

	emit(types.Event{Kind: types.EventVerifyStart, Count: len(frontier)})
	result.Pairs = make([]types.Pair, 0, len(frontier))
	for _, p := range frontier {
		ok := p.Product().Cmp(s.n) == 0
		emit(types.Event{Kind: types.EventVerified, Pair: p, Passed: ok})
		if ok {
			result.Pairs = append(result.Pairs, p)
		} else {
			result.Rejected++
		}
	}

	result.Duration = nowFunc().Sub(started)
	emit(types.Event{Kind: types.EventDone, Count: len(result.Pairs), Elapsed: result.Duration})
	log.Debug("search complete",
		zap.String("n", s.n.String()),
		zap.Int("results", len(result.Pairs)),
		zap.Int("rejected", result.Rejected),
		zap.Duration("elapsed", result.Duration))
	return result, nil
}
