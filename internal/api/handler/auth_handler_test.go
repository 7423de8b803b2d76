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

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

type stubAuthService struct {
	result  *ports.AuthResult
	err     error
	lastReg ports.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	s.lastReg = input
	return s.result, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return s.result, s.err
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{result: &ports.AuthResult{
		User:  &domain.User{ID: "uid-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin},
		Token: "tok",
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "uid-1" || resp["token"] != "tok" || resp["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected response %v", resp)
	}
	if svc.lastReg.Username != "alice" {
		t.Fatalf("expected payload forwarded, got %+v", svc.lastReg)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := map[string]string{
		"short username": `{"username":"al","email":"alice@example.com","password":"pass123"}`,
		"bad email":      `{"username":"alice","email":"not-an-email","password":"pass123"}`,
		"short password": `{"username":"alice","email":"alice@example.com","password":"abc"}`,
	}
	for name, body := range cases {
		c, _ := newJSONContext(http.MethodPost, "/api/auth/register", body)
		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_DuplicatePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrUserExists})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"pass123"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists passed to the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	svc := &stubAuthService{result: &ports.AuthResult{
		User:  &domain.User{ID: "uid-1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin},
		Token: "tok",
	}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"nope"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials passed to the error handler, got %v", err)
	}
}
