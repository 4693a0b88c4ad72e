package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	r.users[user.Username] = &clone
	return &clone, nil
}

type failingIssuer struct{ err error }

func (f failingIssuer) Issue(int64, string) (string, error) { return "", f.err }

func adminUser() *domain.User {
	return &domain.User{
		ID:       1,
		Username: "admin",
		Password: "admin123",
		Role:     domain.RoleAdministrator,
	}
}

func TestLoginService_Success(t *testing.T) {
	repo := newStubUserRepo(adminUser())
	svc := NewLoginService(repo, NewPlaintextVerifier(), NewTokenService("secret", time.Hour))

	result := svc.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User == nil || result.User.Username != "admin" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.Error != "" {
		t.Fatalf("success result must not carry an error, got %q", result.Error)
	}
}

func TestLoginService_UnknownUser(t *testing.T) {
	repo := newStubUserRepo(adminUser())
	svc := NewLoginService(repo, NewPlaintextVerifier(), NewTokenService("secret", time.Hour))

	result := svc.Login(context.Background(), domain.Credentials{Username: "ghost", Password: "whatever"})

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.User != nil || result.Token != "" {
		t.Fatalf("failure result must not carry user or token: %+v", result)
	}
	if result.Error != domain.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected error message: %q", result.Error)
	}
}

func TestLoginService_WrongPassword(t *testing.T) {
	repo := newStubUserRepo(adminUser())
	svc := NewLoginService(repo, NewPlaintextVerifier(), NewTokenService("secret", time.Hour))

	result := svc.Login(context.Background(), domain.Credentials{Username: "admin", Password: "wrong"})

	if result.Success {
		t.Fatalf("expected failure")
	}
	// Same generic message as the unknown-user case: the result must not
	// reveal that the username exists.
	if result.Error != domain.ErrInvalidCredentials.Error() {
		t.Fatalf("unexpected error message: %q", result.Error)
	}
}

func TestLoginService_StoreFault(t *testing.T) {
	repo := newStubUserRepo(adminUser())
	repo.findErr = errors.New("database is locked")
	svc := NewLoginService(repo, NewPlaintextVerifier(), NewTokenService("secret", time.Hour))

	result := svc.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error != "database is locked" {
		t.Fatalf("expected the underlying fault description, got %q", result.Error)
	}
	if result.User != nil || result.Token != "" {
		t.Fatalf("failure result must not carry user or token: %+v", result)
	}
}

func TestLoginService_IssuerFault(t *testing.T) {
	repo := newStubUserRepo(adminUser())
	svc := NewLoginService(repo, NewPlaintextVerifier(), failingIssuer{err: errors.New("signing failed")})

	result := svc.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Error != "signing failed" {
		t.Fatalf("expected the issuer fault description, got %q", result.Error)
	}
}
