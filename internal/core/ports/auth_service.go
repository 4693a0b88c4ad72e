package ports

import (
	"context"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// PasswordVerifier compares a plaintext candidate against the stored value.
type PasswordVerifier interface {
	Validate(candidate, stored string) bool
	Hash(plain string) string
}

// TokenIssuer signs an identity payload into a bearer token.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// TokenVerifier decodes and verifies a bearer token. Every failure mode
// (malformed, tampered, wrong secret, expired) collapses to ok == false;
// it never returns an error.
type TokenVerifier interface {
	Verify(token string) (claims *domain.TokenClaims, ok bool)
}

// LoginResult is the uniform outcome of a login attempt. Exactly one of
// (User, Token) or Error is populated.
type LoginResult struct {
	Success bool
	User    *domain.User
	Token   string
	Error   string
}

// LoginUseCase orchestrates lookup, password check and token issuance.
type LoginUseCase interface {
	Login(ctx context.Context, credentials domain.Credentials) LoginResult
}
