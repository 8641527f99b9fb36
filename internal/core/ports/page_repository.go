package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// PageRepository defines persistence operations for pages.
type PageRepository interface {
	Insert(ctx context.Context, page *domain.Page) error
	FindByID(ctx context.Context, id int) (*domain.Page, error)
	List(ctx context.Context) ([]*domain.Page, error)
	Update(ctx context.Context, page *domain.Page) error
	Delete(ctx context.Context, id int) error
}
