package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// Issuer is the iss claim stamped on every token minted by this service.
const Issuer = "gestor-fincas-api"

const defaultTokenTTL = 24 * time.Hour

type jwtClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens carrying the
// user identity plus iat, exp and iss claims.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user. exp is set to iat + the configured
// TTL.
func (s *TokenService) Issue(userID int64, username string) (string, error) {
	now := time.Now().UTC()

	claims := jwtClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    Issuer,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify decodes token and checks its signature, expiry and issuer. All
// failure modes collapse to ok == false so that callers branch on presence
// rather than on error values: a malformed, tampered, expired or misissued
// token is simply "no identity". Tokens missing exp or iss are rejected.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, bool) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || claims.ExpiresAt == nil || claims.Issuer == "" {
		return nil, false
	}

	decoded := &domain.TokenClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Expiry:   claims.ExpiresAt.Time,
		Issuer:   claims.Issuer,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	return decoded, true
}
