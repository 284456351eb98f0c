package ports

import (
	"context"

	"github.com/xplog/xp-tracker/internal/core/domain"
)

// UserService manages account records keyed by email.
type UserService interface {
	GetUserByEmail(ctx context.Context, email string) *domain.User
	CreateUser(ctx context.Context, email, name string) (domain.User, error)
	// SignIn returns the user stored under email, creating it on first use.
	SignIn(ctx context.Context, email, name string) (domain.User, error)
}
