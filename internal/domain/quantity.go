package domain

import (
	"errors"
	"strconv"
	"strings"
)

// MaxLineQuantity caps the quantity of a single cart or order line.
const MaxLineQuantity = 99

// ParseQuantity reads a quantity typed by a shopper. Anything that is not a
// positive integer becomes 1; values above MaxLineQuantity are capped.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return MaxLineQuantity
	}
	if err != nil || n < 1 {
		return 1
	}
	return min(n, MaxLineQuantity)
}

// addQuantity sums two line quantities without leaving [1, MaxLineQuantity].
func addQuantity(current, extra int) int {
	if extra >= MaxLineQuantity-current {
		return MaxLineQuantity
	}
	return current + extra
}
