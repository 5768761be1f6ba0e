package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sadisms/stack-radar/internal/config"
)

// TokenClaims is the payload carried by an access token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// TokenManager issues and verifies signed access tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenManager builds a TokenManager from the auth configuration. Only
// HMAC signing methods are supported.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown JWT algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported JWT algorithm %q, HMAC required", cfg.Algorithm)
	}
	return &TokenManager{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    time.Duration(cfg.TokenExpireMinutes) * time.Minute,
	}, nil
}

// Generate issues a signed access token for the user.
func (tm *TokenManager) Generate(userID int64, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(tm.ttl).Unix(),
	}
	token := jwt.NewWithClaims(tm.method, claims)
	return token.SignedString(tm.secret)
}

// Parse verifies the token signature and expiry and returns its claims.
func (tm *TokenManager) Parse(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != tm.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("token missing user_id claim")
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{UserID: int64(userID), Email: email}, nil
}
