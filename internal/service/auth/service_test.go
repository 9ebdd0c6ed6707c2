package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	user      *domain.User
	createErr error
	getErr    error
	lastEmail string
}

func (s *stubUserRepo) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	s.lastEmail = email
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.User{ID: "u1", Email: email, PasswordHash: passwordHash}, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.getErr
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.getErr
}

type stubTokenRepo struct {
	stored  map[string]tokenrepo.Token
	last    tokenrepo.Token
	getErr  error
	created int
}

func (s *stubTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	s.created++
	s.last = token
	if s.stored == nil {
		s.stored = map[string]tokenrepo.Token{}
	}
	s.stored[token.Token] = token
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	t, ok := s.stored[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	delete(s.stored, token)
	return nil
}

func TestSignupValidation(t *testing.T) {
	svc := New(&stubUserRepo{}, &stubTokenRepo{}, time.Hour)

	if _, err := svc.Signup(context.Background(), "not-an-email", "longenough1"); err == nil {
		t.Fatalf("expected email validation error")
	}
	if _, err := svc.Signup(context.Background(), "a@b.com", "short"); err == nil {
		t.Fatalf("expected password validation error")
	}
}

func TestSignupNormalizesEmail(t *testing.T) {
	users := &stubUserRepo{}
	svc := New(users, &stubTokenRepo{}, time.Hour)

	user, err := svc.Signup(context.Background(), "  User@Example.COM ", "longenough1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.lastEmail != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", users.lastEmail)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough1")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &stubUserRepo{user: &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: string(hash)}}
	svc := New(users, &stubTokenRepo{}, time.Hour)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrongpass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubUserRepo{getErr: domain.ErrNotFound}, &stubTokenRepo{}, time.Hour)
	_, _, err := svc.Login(context.Background(), "nobody@b.com", "whatever1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginIssuesTokenAndLookupResolvesIt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := &stubUserRepo{user: &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: string(hash)}}
	tokens := &stubTokenRepo{}
	svc := New(users, tokens, time.Hour)

	user, token, err := svc.Login(context.Background(), "a@b.com", "rightpass1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || token == "" {
		t.Fatalf("unexpected login result: %+v %q", user, token)
	}
	if tokens.last.UserID != "u1" {
		t.Fatalf("token stored for wrong user: %+v", tokens.last)
	}

	resolved, err := svc.LookupByToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.ID != "u1" {
		t.Fatalf("unexpected user: %+v", resolved)
	}
}

func TestLookupByTokenExpired(t *testing.T) {
	tokens := &stubTokenRepo{stored: map[string]tokenrepo.Token{
		"stale": {Token: "stale", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)},
	}}
	svc := New(&stubUserRepo{user: &domain.User{ID: "u1"}}, tokens, time.Hour)

	_, err := svc.LookupByToken(context.Background(), "stale")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, ok := tokens.stored["stale"]; ok {
		t.Fatalf("expired token should be deleted on validation")
	}
}
