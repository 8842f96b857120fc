package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrInvalidToken covers malformed structure, bad signatures and
// expired tokens alike; callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

type TokenClaims struct {
	TokenType string `json:"token_type"`
	UserID    string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the stateless bearer tokens. The
// signing secret is process-wide configuration, loaded once at startup.
type TokenService struct {
	secret        []byte
	accessTTL     time.Duration
	refreshMonths int
}

func NewTokenService(secret string, accessTTL time.Duration, refreshMonths int) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		refreshMonths: refreshMonths,
	}
}

func (t *TokenService) IssueAccessToken(userID string) (string, error) {
	now := time.Now()
	return t.sign(TokenClaims{
		TokenType: TokenTypeAccess,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			Subject:   userID,
		},
	})
}

func (t *TokenService) IssueRefreshToken(userID string) (string, error) {
	now := time.Now()
	return t.sign(TokenClaims{
		TokenType: TokenTypeRefresh,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.AddDate(0, t.refreshMonths, 0)),
			Subject:   userID,
		},
	})
}

func (t *TokenService) sign(claims TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func (t *TokenService) ParseToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
