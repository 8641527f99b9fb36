package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/core/domain"
	"github.com/pagehub/pages-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists authentication
// events to the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single authentication event. Events carry no secrets,
// only the attempted email and the outcome.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("action", string(event.Action)).
		Bool("success", event.Success).
		Msg("auth event recorded")

	return nil
}
