package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Parse(raw)
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenManager(secret, 60).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	// alg=none tokens must never validate.
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 60).Parse(token)
	assert.Error(t, err)
}
