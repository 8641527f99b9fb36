package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// AuditRepository persists authentication attempt records.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
