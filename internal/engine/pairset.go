package engine

import (
	"encoding/binary"
	"math/big"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/varalys/digitfactor/internal/types"
)

// pairSet is an iteration-scoped set of ordered pairs. Pairs are bucketed by
// an xxhash digest of both magnitudes and compared exactly inside a bucket,
// so hash collisions never merge distinct pairs.
type pairSet struct {
	buckets map[uint64][]types.Pair
	size    int
	buf     []byte
}

func newPairSet(sizeHint int) *pairSet {
	return &pairSet{buckets: make(map[uint64][]types.Pair, sizeHint)}
}

func (s *pairSet) key(p types.Pair) uint64 {
	s.buf = appendInt(s.buf[:0], p.Left)
	s.buf = appendInt(s.buf, p.Right)
	return xxhash.Sum64(s.buf)
}

// appendInt writes a length-prefixed hex rendering of v so that the boundary
// between the two halves of a pair is unambiguous.
func appendInt(buf []byte, v *big.Int) []byte {
	start := len(buf)
	buf = binary.LittleEndian.AppendUint64(buf, 0)
	buf = v.Append(buf, 16)
	binary.LittleEndian.PutUint64(buf[start:], uint64(len(buf)-start-8))
	return buf
}

func (s *pairSet) Has(p types.Pair) bool {
	for _, q := range s.buckets[s.key(p)] {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Add inserts p and reports whether it was absent.
func (s *pairSet) Add(p types.Pair) bool {
	k := s.key(p)
	for _, q := range s.buckets[k] {
		if q.Equal(p) {
			return false
		}
	}
	s.buckets[k] = append(s.buckets[k], p)
	s.size++
	return true
}

func (s *pairSet) Len() int { return s.size }
