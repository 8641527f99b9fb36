package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pagehub/pages-api/internal/core/domain"
	"github.com/pagehub/pages-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			return &domain.User{
				ID:       "id-1",
				Username: in.Username,
				Email:    in.Email,
				Role:     domain.RoleUser,
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"alice@example.com","username":"alice","password":"s3cret1"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/user/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" || resp.Email != "alice@example.com" || resp.Role != domain.RoleUser {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "s3cret1") {
		t.Fatalf("response leaks the password")
	}
}

func TestAuthHandler_Register_RoleFieldIgnored(t *testing.T) {
	var got ports.RegisterInput
	svc := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: "id-1", Username: in.Username, Email: in.Email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"bob@example.com","username":"bobby","password":"s3cret1","role":"Admin"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/user/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	// the service input has no role field at all; nothing from the request
	// can smuggle an elevated role through
	if got.Username != "bobby" || got.Email != "bob@example.com" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(svc)

	cases := map[string]string{
		"missing email":  `{"username":"alice","password":"s3cret1"}`,
		"bad email":      `{"email":"nope","username":"alice","password":"s3cret1"}`,
		"short password": `{"email":"a@b.com","username":"alice","password":"abc"}`,
		"short username": `{"email":"a@b.com","username":"al","password":"s3cret1"}`,
		"not even json":  `{{{`,
	}

	for name, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/user/register", body)
		err := h.Register(c)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			t.Fatalf("%s: expected HTTP error, got %v", name, err)
		}
		if he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, he.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "s3cret1" {
				t.Fatalf("unexpected credentials: %s / %s", email, password)
			}
			return "signed-token", &domain.User{Username: "alice", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"alice@example.com","password":"s3cret1"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/user/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" || resp.Username != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"alice@example.com","password":"wrong"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/user/login", body)

	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
