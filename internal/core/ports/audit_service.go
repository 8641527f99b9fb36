package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// AuditService processes authentication events handed off by the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
