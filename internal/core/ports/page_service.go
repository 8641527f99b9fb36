package ports

import (
	"context"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// PageInput is the DTO passed from the transport layer to PageService.
type PageInput struct {
	ID     int
	Title  string
	Author string
	Body   string
}

// PageService exposes the CRUD operations on the pages resource. All access
// control happens before these are invoked; the service trusts its caller.
type PageService interface {
	Create(ctx context.Context, in PageInput) (*domain.Page, error)
	Get(ctx context.Context, id int) (*domain.Page, error)
	List(ctx context.Context) ([]*domain.Page, error)
	Update(ctx context.Context, in PageInput) (*domain.Page, error)
	Delete(ctx context.Context, id int) error
}
