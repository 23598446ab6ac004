package port

import (
	"context"

	"github.com/asadalimcj/zearsports/internal/domain"
)

type CartMutation func(cart domain.Cart) (domain.Cart, error)

// CartStore keeps one cart per browsing session.
// Update runs fn under a per-session lock and stores its result only when fn succeeds.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	Update(ctx context.Context, sessionID string, fn CartMutation) (domain.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}
