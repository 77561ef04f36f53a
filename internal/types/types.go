package types

import (
	"fmt"
	"math/big"
	"time"
)

// Pair is an ordered pair of factor candidates. While a search is running
// only the low-order digits of Left and Right are known to be correct; pairs
// returned as results satisfy Left × Right == N exactly.
type Pair struct {
	Left  *big.Int `json:"left"`
	Right *big.Int `json:"right"`
}

// NewPair builds a pair from two int64 values, mostly useful in tests.
func NewPair(l, r int64) Pair {
	return Pair{Left: big.NewInt(l), Right: big.NewInt(r)}
}

// Product returns Left × Right as a fresh integer.
func (p Pair) Product() *big.Int {
	return new(big.Int).Mul(p.Left, p.Right)
}

// Swap returns the digit-swapped twin (Right, Left).
func (p Pair) Swap() Pair {
	return Pair{Left: p.Right, Right: p.Left}
}

// Equal reports whether both sides hold the same values.
func (p Pair) Equal(o Pair) bool {
	return p.Left.Cmp(o.Left) == 0 && p.Right.Cmp(o.Right) == 0
}

func (p Pair) String() string {
	return fmt.Sprintf("[ %s, %s ]", p.Left, p.Right)
}

// EventKind identifies a progress event emitted by the search engine.
type EventKind int

const (
	EventIterationStart EventKind = iota
	EventCandidateAccepted
	EventIterationDone
	EventVerifyStart
	EventVerified
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventIterationStart:
		return "iteration_start"
	case EventCandidateAccepted:
		return "candidate_accepted"
	case EventIterationDone:
		return "iteration_done"
	case EventVerifyStart:
		return "verify_start"
	case EventVerified:
		return "verified"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event describes one observable step of a search. Which fields are set
// depends on Kind: Digit is the 1-based digit count of the iteration, Pair is
// set for accepted and verified candidates, Count carries survivor, frontier
// or result counts, Passed is the verification outcome and Elapsed is set on
// EventDone.
type Event struct {
	Kind    EventKind
	Digit   int
	Pair    Pair
	Count   int
	Passed  bool
	Elapsed time.Duration
}
