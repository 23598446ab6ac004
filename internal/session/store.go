// Package session keeps shopping carts and sign-ins in process memory, one per browsing session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/asadalimcj/zearsports/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	// mu serializes read-modify-write cycles on one session's cart.
	mu        sync.Mutex
	cart      domain.Cart
	userID    uuid.UUID
	expiresAt time.Time
	deleted   bool
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(ttl time.Duration, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ port.CartStore    = (*Store)(nil)
	_ port.SessionUsers = (*Store)(nil)
)

// Load returns the session's cart, or an empty one if the session has none or it expired.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, fmt.Errorf("sessionID is empty")
	}
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		return domain.NewCart(sessionID), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted || s.expired(e) {
		return domain.NewCart(sessionID), nil
	}

	return e.cart.Clone(), nil
}

// Update applies fn to the session's cart while holding that session's lock.
// The result is stored only when fn returns no error; the session's expiry slides forward.
func (s *Store) Update(ctx context.Context, sessionID string, fn port.CartMutation) (domain.Cart, error) {
	if sessionID == "" {
		return domain.Cart{}, fmt.Errorf("sessionID is empty")
	}

	for {
		if err := ctx.Err(); err != nil {
			return domain.Cart{}, err
		}

		e := s.entryFor(sessionID)

		e.mu.Lock()
		if e.deleted {
			// lost a race with Delete or the sweeper, take the fresh entry
			e.mu.Unlock()
			continue
		}

		current := e.cart
		if s.expired(e) {
			current = domain.NewCart(sessionID)
			e.userID = uuid.Nil
		}

		updated, err := fn(current.Clone())
		if err != nil {
			e.mu.Unlock()
			return current.Clone(), err
		}

		updated.SessionID = sessionID
		e.cart = updated.Clone()
		e.expiresAt = s.now().Add(s.ttl)
		e.mu.Unlock()

		return updated, nil
	}
}

// SignIn binds the session to an account. The cart is kept.
func (s *Store) SignIn(ctx context.Context, sessionID string, userID uuid.UUID) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := s.entryFor(sessionID)

		e.mu.Lock()
		if e.deleted {
			e.mu.Unlock()
			continue
		}
		if s.expired(e) {
			e.cart = domain.NewCart(sessionID)
		}
		e.userID = userID
		e.expiresAt = s.now().Add(s.ttl)
		e.mu.Unlock()

		return nil
	}
}

// CurrentUser reports the account the session is signed in to.
func (s *Store) CurrentUser(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, false, err
	}

	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok {
		return uuid.Nil, false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deleted || s.expired(e) || e.userID == uuid.Nil {
		return uuid.Nil, false, nil
	}
	return e.userID, true, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.deleted = true
		e.mu.Unlock()
	}

	return nil
}

// Sweep drops expired sessions. Sessions with a mutation in flight are left for the next sweep.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if s.expired(e) {
			e.deleted = true
			delete(s.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}

	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired sessions swept", zap.Int("count", n))
			}
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) entryFor(sessionID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{cart: domain.NewCart(sessionID), expiresAt: s.now().Add(s.ttl)}
		s.sessions[sessionID] = e
	}
	return e
}

func (s *Store) expired(e *entry) bool {
	return !s.now().Before(e.expiresAt)
}
