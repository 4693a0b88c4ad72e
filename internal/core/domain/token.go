package domain

import "time"

// TokenClaims is the decoded payload of a verified bearer token.
type TokenClaims struct {
	UserID   int64
	Username string
	IssuedAt time.Time
	Expiry   time.Time
	Issuer   string
}

// Identity is the authenticated-user context derived from a valid token.
// It lives only for the duration of a single request.
type Identity struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}
