package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestSessionTokenRoundTrip(t *testing.T) {
	maker := NewJWTMaker(testSecret)

	tokenStr, created, err := maker.CreateSessionToken(42, "ann@x.com", "Ann")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, created)

	claims, err := maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, SessionDuration, expiresIn, float64(time.Minute))
}

func TestResetTokenOmitsName(t *testing.T) {
	maker := NewJWTMaker(testSecret)

	tokenStr, _, err := maker.CreateResetToken(7, "bob@x.com")
	require.NoError(t, err)

	claims, err := maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "bob@x.com", claims.Email)
	assert.Empty(t, claims.Name)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, ResetDuration, expiresIn, float64(time.Minute))
}

func TestExpiredToken(t *testing.T) {
	maker := NewJWTMaker(testSecret)

	tokenStr, _, err := maker.createToken(1, "ann@x.com", "Ann", -time.Minute)
	require.NoError(t, err)

	claims, err := maker.VerifyToken(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	maker := NewJWTMaker(testSecret)
	other := NewJWTMaker("some-other-secret")

	tokenStr, _, err := maker.CreateSessionToken(1, "ann@x.com", "Ann")
	require.NoError(t, err)

	claims, err := other.VerifyToken(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRejectsUnexpectedSigningMethod(t *testing.T) {
	maker := NewJWTMaker(testSecret)

	claims, err := NewUserClaims(1, "ann@x.com", "Ann", time.Hour)
	require.NoError(t, err)

	// alg=none tokens must never verify
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenStr, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	got, err := maker.VerifyToken(tokenStr)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
