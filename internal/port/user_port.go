package port

import (
	"context"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	// CreateUser returns domain.ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error
}

// SessionUsers remembers which account, if any, a browsing session is signed in to.
type SessionUsers interface {
	SignIn(ctx context.Context, sessionID string, userID uuid.UUID) error
	CurrentUser(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
}
