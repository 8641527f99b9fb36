package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/core/domain"
	"github.com/pagehub/pages-api/internal/core/ports"
)

// PageService is a thin data-access wrapper around the pages store. All
// authorization decisions happen in the middleware before these run.
type PageService struct {
	repo ports.PageRepository
	log  zerolog.Logger
}

func NewPageService(repo ports.PageRepository, log zerolog.Logger) *PageService {
	return &PageService{repo: repo, log: log}
}

func (s *PageService) Create(ctx context.Context, in ports.PageInput) (*domain.Page, error) {
	page := &domain.Page{
		ID:        in.ID,
		Title:     in.Title,
		Author:    in.Author,
		Body:      in.Body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, page); err != nil {
		return nil, err
	}

	s.log.Info().Int("page_id", page.ID).Msg("page created")
	return page, nil
}

func (s *PageService) Get(ctx context.Context, id int) (*domain.Page, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PageService) List(ctx context.Context) ([]*domain.Page, error) {
	return s.repo.List(ctx)
}

func (s *PageService) Update(ctx context.Context, in ports.PageInput) (*domain.Page, error) {
	page, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	page.Title = in.Title
	page.Author = in.Author
	page.Body = in.Body
	page.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, err
	}

	s.log.Info().Int("page_id", page.ID).Msg("page updated")
	return page, nil
}

func (s *PageService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("page_id", id).Msg("page deleted")
	return nil
}
