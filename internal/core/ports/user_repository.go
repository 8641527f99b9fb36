package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// UserRepository defines the credential store. Uniqueness of username and
// email is enforced by the store itself: concurrent inserts with the same
// key yield exactly one success and domain.ErrUserExists for the rest.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
