package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamevault/storefront-api/internal/core/domain"
	"github.com/gamevault/storefront-api/internal/core/ports"
)

type stubUserRepo struct {
	users       map[string]*domain.User
	createCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.createCalls++
	if _, exists := r.users[user.ID]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubIdentity struct {
	nextUID string
	calls   int
}

func (s *stubIdentity) CreateUser(_ context.Context, _, _, _ string) (string, error) {
	s.calls++
	return s.nextUID, nil
}

func newAuthService(repo *stubUserRepo, identity *stubIdentity) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, identity, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	identity := &stubIdentity{nextUID: "uid-1"}
	svc, tokens := newAuthService(repo, identity)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if result.User.ID != "uid-1" {
		t.Fatalf("expected the identity uid as document id, got %s", result.User.ID)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", result.User.Role)
	}
	if result.User.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	userID, err := tokens.Verify(result.Token)
	if err != nil || userID != "uid-1" {
		t.Fatalf("issued token does not verify to the user: %v / %s", err, userID)
	}
	if identity.calls != 1 {
		t.Fatalf("expected one identity creation, got %d", identity.calls)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	identity := &stubIdentity{nextUID: "uid-1"}
	svc, _ := newAuthService(repo, identity)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	identity.nextUID = "uid-2"
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "pass456",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// Neither the second account nor its credential-service identity exists.
	if identity.calls != 1 {
		t.Fatalf("expected no identity minted for the duplicate, got %d calls", identity.calls)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one user document, got %d creates", repo.createCalls)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	identity := &stubIdentity{nextUID: "uid-1"}
	svc, _ := newAuthService(repo, identity)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	identity.nextUID = "uid-2"
	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "pass456",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if identity.calls != 1 {
		t.Fatalf("expected no identity minted for the duplicate, got %d calls", identity.calls)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubIdentity{nextUID: "uid-1"})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, &stubIdentity{nextUID: "uid-1"})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if userID, err := tokens.Verify(result.Token); err != nil || userID != "uid-1" {
		t.Fatalf("issued token does not verify to the user: %v / %s", err, userID)
	}
}

func TestAuthService_Login_DoesNotRevealWhichFieldFailed(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, &stubIdentity{nextUID: "uid-1"})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "pass123",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "alice@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@example.com", "nope")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
}
