// Package cache memoizes verified search results on disk, one JSON file per
// input value.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/varalys/digitfactor/internal/engine"
	"github.com/varalys/digitfactor/internal/types"
)

// ErrMiss is returned by Load when no entry exists for a value.
var ErrMiss = errors.New("cache miss")

// Entry is one memoized search outcome.
type Entry struct {
	N         *big.Int     `json:"n"`
	Digits    int          `json:"digits"`
	Pairs     []types.Pair `json:"pairs"`
	Timestamp time.Time    `json:"timestamp"`
}

type Store struct {
	dir string
}

func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path(n *big.Int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%016x.json", xxhash.Sum64String(n.String())))
}

// Load returns the entry stored for n. Entries whose stored value differs
// from n (a digest collision) count as a miss. Entries that do not verify
// against n return an error so the caller searches again.
func (s *Store) Load(n *big.Int) (Entry, error) {
	var e Entry
	b, err := os.ReadFile(s.path(n))
	if errors.Is(err, fs.ErrNotExist) {
		return e, ErrMiss
	}
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(b, &e); err != nil {
		return Entry{}, fmt.Errorf("decode cache entry: %w", err)
	}
	if e.N == nil || e.N.Cmp(n) != 0 {
		return Entry{}, ErrMiss
	}
	if err := e.verify(n); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// verify checks the entry the same way a search checks its survivors:
// every pair must multiply to n exactly.
func (e Entry) verify(n *big.Int) error {
	if want := engine.DigitLength(n); e.Digits != want {
		return fmt.Errorf("cache entry for %s: digits %d, want %d", n, e.Digits, want)
	}
	for i, p := range e.Pairs {
		if p.Left == nil || p.Right == nil {
			return fmt.Errorf("cache entry for %s: pair %d is incomplete", n, i)
		}
		if p.Product().Cmp(n) != 0 {
			return fmt.Errorf("cache entry for %s: pair %s does not multiply to %s", n, p, n)
		}
	}
	return nil
}

// Save writes the verified pairs for n, replacing any previous entry.
func (s *Store) Save(n *big.Int, digits int, pairs []types.Pair) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if pairs == nil {
		pairs = []types.Pair{}
	}
	e := Entry{N: n, Digits: digits, Pairs: pairs, Timestamp: time.Now().UTC()}
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(n), b, 0o644)
}
