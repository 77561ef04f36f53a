package engine

import (
	"context"
	"math/big"
	"time"

	"github.com/varalys/digitfactor/internal/types"
	"golang.org/x/sync/errgroup"
)

var ten = big.NewInt(10)

type search struct {
	n        *big.Int
	workers  int
	deadline time.Time
	emit     func(types.Event)
}

// step holds the values shared by every expansion within one iteration.
type step struct {
	digit   int
	shifts  [10]*big.Int // d·10^(digit-1)
	modulus *big.Int     // 10^digit
	want    *big.Int     // N mod modulus
}

func newStep(digit int, place, n *big.Int) *step {
	st := &step{digit: digit}
	for d := range st.shifts {
		st.shifts[d] = new(big.Int).Mul(place, big.NewInt(int64(d)))
	}
	st.modulus = new(big.Int).Mul(place, ten)
	st.want = new(big.Int).Mod(n, st.modulus)
	return st
}

// expand returns the one-digit extensions of p whose product agrees with N
// in the low st.digit digits and does not exceed N, in left-major order.
// Comparing residues modulo 10^digit is the zero-padded trailing-digit
// comparison: a short product counts as having leading zeros.
func (st *step) expand(p types.Pair, n *big.Int) []types.Pair {
	var out []types.Pair
	var r, product, residue big.Int
	for left := 0; left < 10; left++ {
		l := new(big.Int).Add(p.Left, st.shifts[left])
		for right := 0; right < 10; right++ {
			r.Add(p.Right, st.shifts[right])
			product.Mul(l, &r)
			if residue.Mod(&product, st.modulus).Cmp(st.want) != 0 {
				continue
			}
			if product.Cmp(n) > 0 {
				continue
			}
			out = append(out, types.Pair{Left: l, Right: new(big.Int).Set(&r)})
		}
	}
	return out
}

func (s *search) checkBudget(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.deadline.IsZero() && !nowFunc().Before(s.deadline) {
		return ErrTimeBudget
	}
	return nil
}

// iterate builds the next frontier. Candidates are merged in frontier order
// through a single dedup set regardless of how they were expanded.
func (s *search) iterate(ctx context.Context, st *step, frontier []types.Pair) ([]types.Pair, error) {
	m := &merger{seen: newPairSet(len(frontier)), digit: st.digit, emit: s.emit}
	if s.workers <= 1 || len(frontier) < 2 {
		for _, p := range frontier {
			if err := s.checkBudget(ctx); err != nil {
				return nil, err
			}
			m.add(st.expand(p, s.n))
		}
		return m.next, nil
	}

	batches, err := s.expandParallel(ctx, st, frontier)
	if err != nil {
		return nil, err
	}
	for _, batch := range batches {
		m.add(batch)
	}
	return m.next, nil
}

// expandParallel expands contiguous chunks of the frontier concurrently.
// batches[i] holds the candidates of frontier[i].
func (s *search) expandParallel(ctx context.Context, st *step, frontier []types.Pair) ([][]types.Pair, error) {
	batches := make([][]types.Pair, len(frontier))
	workers := min(s.workers, len(frontier))
	chunk := (len(frontier) + workers - 1) / workers

	eg, egCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(frontier); start += chunk {
		end := min(start+chunk, len(frontier))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := s.checkBudget(egCtx); err != nil {
					return err
				}
				batches[i] = st.expand(frontier[i], s.n)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// merger applies the iteration-scoped dedup: an accepted pair and its
// swapped twin are both marked seen, so the twin is never derived again in
// the same iteration.
type merger struct {
	seen  *pairSet
	next  []types.Pair
	digit int
	emit  func(types.Event)
}

func (m *merger) add(candidates []types.Pair) {
	for _, c := range candidates {
		if m.seen.Has(c) {
			continue
		}
		m.seen.Add(c)
		m.seen.Add(c.Swap())
		m.next = append(m.next, c)
		m.emit(types.Event{Kind: types.EventCandidateAccepted, Digit: m.digit, Pair: c})
	}
}
