package service

import (
	"context"
	"errors"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/ports"
)

// LoginService implements the login use case: lookup, password check, token
// issuance. It never returns a Go error across its port; every outcome is a
// ports.LoginResult with exactly one of (User, Token) or Error populated.
type LoginService struct {
	repo      ports.UserRepository
	passwords ports.PasswordVerifier
	tokens    ports.TokenIssuer
}

func NewLoginService(repo ports.UserRepository, passwords ports.PasswordVerifier, tokens ports.TokenIssuer) *LoginService {
	return &LoginService{repo: repo, passwords: passwords, tokens: tokens}
}

func (s *LoginService) Login(ctx context.Context, credentials domain.Credentials) ports.LoginResult {
	user, err := s.repo.FindByUsername(ctx, credentials.Username)
	if err != nil {
		// Unknown users and store faults both land here. The unknown-user
		// case must carry the same generic message as a wrong password so
		// the response never reveals whether the username exists.
		if errors.Is(err, domain.ErrUserNotFound) {
			return failure(domain.ErrInvalidCredentials)
		}
		return failure(err)
	}

	if !s.passwords.Validate(credentials.Password, user.Password) {
		return failure(domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return failure(err)
	}

	return ports.LoginResult{Success: true, User: user, Token: token}
}

func failure(err error) ports.LoginResult {
	msg := "Authentication failed"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ports.LoginResult{Success: false, Error: msg}
}
