package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sadisms/stack-radar/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:          "unit-test-secret",
		Algorithm:          "HS256",
		TokenExpireMinutes: 60,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	token, err := tm.Generate(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	other := testAuthConfig()
	other.SecretKey = "a-different-secret"
	verifier, err := NewTokenManager(other)
	require.NoError(t, err)

	token, err := issuer.Generate(1, "user@example.com")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": float64(1),
		"email":   "user@example.com",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	tokenStr, err := expired.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(tokenStr)
	assert.Error(t, err)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	tm, err := NewTokenManager(testAuthConfig())
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": float64(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Parse(tokenStr)
	assert.Error(t, err)
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Algorithm = "RS256"

	_, err := NewTokenManager(cfg)
	assert.Error(t, err)
}
