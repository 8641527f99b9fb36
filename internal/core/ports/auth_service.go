package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// RegisterInput carries validated registration fields into the auth service.
// Role is intentionally absent: every self-service registration is created
// with the default role, and elevation happens only through the bootstrap
// administrator seed.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService turns raw credentials into identities and issued tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
