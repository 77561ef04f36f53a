package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varalys/digitfactor/internal/types"
)

func pairStrings(ps []types.Pair) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// unordered normalizes pairs to "small*large" and drops orientation duplicates.
func unordered(ps []types.Pair) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range ps {
		a, b := p.Left, p.Right
		if a.Cmp(b) > 0 {
			a, b = b, a
		}
		k := a.String() + "*" + b.String()
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func divisorPairs(n int64) []string {
	var out []string
	for a := int64(1); a*a <= n; a++ {
		if n%a == 0 {
			out = append(out, big.NewInt(a).String()+"*"+big.NewInt(n/a).String())
		}
	}
	sort.Strings(out)
	return out
}

func TestFactor_ExactOrderedResults(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected []types.Pair
	}{
		{
			name:     "one",
			n:        1,
			expected: []types.Pair{types.NewPair(1, 1)},
		},
		{
			name:     "prime",
			n:        7,
			expected: []types.Pair{types.NewPair(1, 7)},
		},
		{
			name:     "twelve keeps the two-digit factor",
			n:        12,
			expected: []types.Pair{types.NewPair(1, 12), types.NewPair(2, 6), types.NewPair(3, 4)},
		},
		{
			name:     "ten derives the swapped orientation",
			n:        10,
			expected: []types.Pair{types.NewPair(10, 1), types.NewPair(2, 5)},
		},
		{
			name: "zero is bounded to one digit",
			n:    0,
			expected: []types.Pair{
				types.NewPair(0, 0), types.NewPair(0, 1), types.NewPair(0, 2), types.NewPair(0, 3), types.NewPair(0, 4),
				types.NewPair(0, 5), types.NewPair(0, 6), types.NewPair(0, 7), types.NewPair(0, 8), types.NewPair(0, 9),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := Factor(context.Background(), big.NewInt(tt.n), Config{})
			require.NoError(t, err)
			assert.Equal(t, pairStrings(tt.expected), pairStrings(pairs))
		})
	}
}

func TestFactor_SquareOfOneTwentyThree(t *testing.T) {
	n := big.NewInt(15129)
	pairs, err := Factor(context.Background(), n, Config{})
	require.NoError(t, err)

	for _, p := range pairs {
		assert.Zero(t, p.Product().Cmp(n), "pair %s does not multiply to %s", p, n)
	}
	assert.Equal(t, []string{"1*15129", "123*123", "3*5043", "41*369", "9*1681"}, unordered(pairs))
}

func TestFactor_MatchesDivisorPairs(t *testing.T) {
	for n := int64(1); n <= 300; n++ {
		res, err := FactorWithStats(context.Background(), big.NewInt(n), Config{})
		require.NoError(t, err, "n=%d", n)
		for _, p := range res.Pairs {
			require.Zero(t, p.Product().Cmp(big.NewInt(n)), "n=%d pair=%s", n, p)
		}
		require.Equal(t, divisorPairs(n), unordered(res.Pairs), "n=%d", n)
		require.Zero(t, res.Rejected, "n=%d", n)
	}
}

func TestFactor_Idempotent(t *testing.T) {
	n := big.NewInt(123456)
	first, err := Factor(context.Background(), n, Config{})
	require.NoError(t, err)
	second, err := Factor(context.Background(), n, Config{})
	require.NoError(t, err)
	assert.Equal(t, pairStrings(first), pairStrings(second))
}

func TestFactor_DoesNotMutateInput(t *testing.T) {
	n := big.NewInt(360)
	_, err := Factor(context.Background(), n, Config{})
	require.NoError(t, err)
	assert.Equal(t, "360", n.String())
}

func TestFactor_TrailingZerosHitFrontierLimit(t *testing.T) {
	// 10^21 does not fit in int64; every zero-ending pair survives the low
	// digits, so the frontier ceiling trips early.
	n, ok := new(big.Int).SetString("1000000000000000000000", 10)
	require.True(t, ok)
	_, err := Factor(context.Background(), n, Config{MaxFrontier: 50})
	var lim *LimitError
	require.ErrorAs(t, err, &lim)
	assert.ErrorIs(t, err, ErrFrontierLimit)
	assert.Equal(t, 2, lim.Digit)
}

func TestFactor_RejectsNegativeAndNil(t *testing.T) {
	_, err := Factor(context.Background(), big.NewInt(-5), Config{})
	var inv *InvalidInputError
	require.ErrorAs(t, err, &inv)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Factor(context.Background(), nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFactor_InvalidConfig(t *testing.T) {
	for _, cfg := range []Config{{Workers: -1}, {MaxFrontier: -1}, {TimeBudget: -time.Second}} {
		_, err := Factor(context.Background(), big.NewInt(12), cfg)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidInput)
	}
}

func TestFactorWithStats_Iterations(t *testing.T) {
	res, err := FactorWithStats(context.Background(), big.NewInt(12), Config{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Digits)
	assert.Equal(t, 3, res.PeakFrontier)
	require.Len(t, res.Iterations, 2)
	assert.Equal(t, 1, res.Iterations[0].Digit)
	assert.Equal(t, 1, res.Iterations[0].Frontier)
	assert.Equal(t, 3, res.Iterations[0].Accepted)
	assert.Equal(t, 2, res.Iterations[1].Digit)
	assert.Equal(t, 3, res.Iterations[1].Frontier)
	assert.Equal(t, 3, res.Iterations[1].Accepted)
	assert.Equal(t, "12", res.N.String())
}

func TestFactorString(t *testing.T) {
	res, err := FactorString(context.Background(), " 12\n", Config{})
	require.NoError(t, err)
	assert.Len(t, res.Pairs, 3)

	_, err = FactorString(context.Background(), "abc", Config{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFactor_MaxFrontier(t *testing.T) {
	_, err := Factor(context.Background(), big.NewInt(12), Config{MaxFrontier: 2})
	var lim *LimitError
	require.ErrorAs(t, err, &lim)
	assert.ErrorIs(t, err, ErrFrontierLimit)
	assert.Equal(t, 1, lim.Digit)
	assert.Equal(t, 3, lim.Frontier)
}

func TestFactor_TimeBudget(t *testing.T) {
	base := time.Unix(0, 0)
	calls := 0
	nowFunc = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * time.Hour)
	}
	t.Cleanup(func() { nowFunc = time.Now })

	_, err := Factor(context.Background(), big.NewInt(12), Config{TimeBudget: time.Minute})
	var lim *LimitError
	require.ErrorAs(t, err, &lim)
	assert.ErrorIs(t, err, ErrTimeBudget)
	assert.Equal(t, 1, lim.Digit)
	assert.Equal(t, 1, lim.Frontier)
}

func TestFactor_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Factor(ctx, big.NewInt(15129), Config{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFactor_ProgressEvents(t *testing.T) {
	var got []string
	cfg := Config{Progress: func(ev types.Event) {
		got = append(got, describe(ev))
	}}
	_, err := Factor(context.Background(), big.NewInt(12), cfg)
	require.NoError(t, err)

	expected := []string{
		"iteration_start d1",
		"candidate_accepted d1 [ 1, 2 ]",
		"candidate_accepted d1 [ 2, 6 ]",
		"candidate_accepted d1 [ 3, 4 ]",
		"iteration_done d1 n3",
		"iteration_start d2",
		"candidate_accepted d2 [ 1, 12 ]",
		"candidate_accepted d2 [ 2, 6 ]",
		"candidate_accepted d2 [ 3, 4 ]",
		"iteration_done d2 n3",
		"verify_start n3",
		"verified [ 1, 12 ] true",
		"verified [ 2, 6 ] true",
		"verified [ 3, 4 ] true",
		"done n3",
	}
	assert.Equal(t, expected, got)
}

func describe(ev types.Event) string {
	switch ev.Kind {
	case types.EventIterationStart:
		return fmt.Sprintf("%s d%d", ev.Kind, ev.Digit)
	case types.EventCandidateAccepted:
		return fmt.Sprintf("%s d%d %s", ev.Kind, ev.Digit, ev.Pair)
	case types.EventIterationDone:
		return fmt.Sprintf("%s d%d n%d", ev.Kind, ev.Digit, ev.Count)
	case types.EventVerified:
		return fmt.Sprintf("%s %s %t", ev.Kind, ev.Pair, ev.Passed)
	default:
		return fmt.Sprintf("%s n%d", ev.Kind, ev.Count)
	}
}

func TestDigitLength(t *testing.T) {
	assert.Equal(t, 1, DigitLength(big.NewInt(0)))
	assert.Equal(t, 1, DigitLength(big.NewInt(9)))
	assert.Equal(t, 2, DigitLength(big.NewInt(10)))
	assert.Equal(t, 3, DigitLength(big.NewInt(-100)))
	assert.Equal(t, 1, DigitLength(nil))
}
