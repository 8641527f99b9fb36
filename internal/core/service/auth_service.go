package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/auth/password"
	"github.com/pagehub/pages-api/internal/auth/token"
	"github.com/pagehub/pages-api/internal/core/domain"
	"github.com/pagehub/pages-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). A nil throttle
// disables throttling.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditSink receives authentication events for asynchronous persistence.
type AuditSink interface {
	Record(event domain.AuthEvent)
}

// AuthService implements registration and login on top of the credential
// store, the password hasher, and the token issuer.
type AuthService struct {
	repo     ports.UserRepository
	hasher   password.Hasher
	tokens   *token.Service
	throttle LoginThrottle
	audit    AuditSink
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher password.Hasher,
	tokens *token.Service,
	throttle LoginThrottle,
	audit AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Register creates a new identity with the default role. The handler layer
// validates field shapes; the checks here are a defensive floor so the
// service is safe to call from any transport.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || !plausibleEmail(in.Email) {
		return nil, domain.ErrInvalidRegistration
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		s.record(domain.ActionRegister, in.Email, false, reasonFor(err))
		return nil, err
	}

	s.record(domain.ActionRegister, in.Email, true, "")
	s.log.Info().Str("username", created.Username).Msg("user registered")

	return created, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password collapse into the same error so callers cannot probe which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, pwd string) (string, *domain.User, error) {
	if email == "" || pwd == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			s.record(domain.ActionLogin, email, false, "throttled")
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || !s.hasher.Verify(pwd, user.PasswordHash) {
		s.noteFailure(ctx, email)
		s.record(domain.ActionLogin, email, false, "bad_credentials")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	s.record(domain.ActionLogin, email, true, "")
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return signed, user, nil
}

// SeedAdmin creates the bootstrap administrator identity once at startup.
// An existing identity with the same email or username is left untouched.
func (s *AuthService) SeedAdmin(ctx context.Context, email, pwd string) error {
	hash, err := s.hasher.Hash(pwd)
	if err != nil {
		return err
	}

	_, err = s.repo.Insert(ctx, &domain.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err == domain.ErrUserExists {
		s.log.Debug().Msg("bootstrap admin already present")
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().Msg("bootstrap admin seeded")
	return nil
}

func (s *AuthService) noteFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) record(action domain.AuthAction, email string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuthEvent{
		Action:    action,
		Email:     email,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

func reasonFor(err error) string {
	switch err {
	case domain.ErrUserExists:
		return "duplicate"
	case domain.ErrInvalidRegistration:
		return "invalid_input"
	default:
		return "error"
	}
}

// plausibleEmail is a cheap shape check; strict validation lives in the
// handler's validator tags.
func plausibleEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}
