package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type OrderNumberGenerator interface {
	Next() string
}

// TimestampOrderNumbers builds numbers as prefix + last 6 digits of epoch millis + 3 random digits.
// Two numbers drawn in the same millisecond collide with probability 1/1000, so
// callers must retry on a uniqueness violation.
type TimestampOrderNumbers struct {
	prefix string
	now    func() time.Time
	random func(n int) int
}

func NewTimestampOrderNumbers(prefix string) *TimestampOrderNumbers {
	return &TimestampOrderNumbers{
		prefix: prefix,
		now:    time.Now,
		random: rand.IntN,
	}
}

func (g *TimestampOrderNumbers) Next() string {
	millis := g.now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%s%06d%03d", g.prefix, millis, g.random(1000))
}
