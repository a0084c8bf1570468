package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/internal/apperrors"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyTokenMissing(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.VerifyToken("")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "invalid")
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("first-secret", time.Hour)
	verifier := NewJWTService("second-secret", time.Hour)

	token, err := issuer.GenerateToken(42)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}
