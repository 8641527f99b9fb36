package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/core/domain"
)

type stubAuditRepo struct {
	events []*domain.AuthEvent
	err    error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{
		Action:    domain.ActionLogin,
		Email:     "alice@example.com",
		Success:   false,
		Reason:    "bad_credentials",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event persisted, got %d", len(repo.events))
	}
	if repo.events[0].Reason != "bad_credentials" {
		t.Fatalf("unexpected event: %+v", repo.events[0])
	}
}

func TestAuditService_Process_RepoError(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("write failed")}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.AuthEvent{Action: domain.ActionRegister}); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
