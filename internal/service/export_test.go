package service

import "time"

func (g *TimestampOrderNumbers) SetSources(now func() time.Time, random func(n int) int) {
	g.now = now
	g.random = random
}

func (s *CartService) SetClock(now func() time.Time) {
	s.now = now
}
