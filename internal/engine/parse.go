package engine

import (
	"math/big"
	"strings"
)

// ParseInput parses a base-10 integer the way a user would type it.
// Surrounding whitespace is ignored and a leading sign is accepted, but the
// resulting value must not be negative. Hex, octal and digit separators are
// rejected.
func ParseInput(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &InvalidInputError{Input: s, Reason: "empty input"}
	}
	n, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, &InvalidInputError{Input: s, Reason: "not a base-10 integer"}
	}
	if n.Sign() < 0 {
		return nil, &InvalidInputError{Input: s, Reason: "cannot factorize a negative integer"}
	}
	return n, nil
}

// DigitLength returns the number of decimal digits of |n|. Zero has one digit.
func DigitLength(n *big.Int) int {
	if n == nil || n.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(n).Text(10))
}
