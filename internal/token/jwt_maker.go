package token

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionDuration is how long a login session cookie stays valid.
	SessionDuration = 15 * 24 * time.Hour
	// ResetDuration is how long an emailed password-reset token stays valid.
	ResetDuration = time.Hour
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

type JWTMaker struct {
	secretKey string
}

func NewJWTMaker(secretKey string) *JWTMaker {
	return &JWTMaker{
		secretKey: secretKey,
	}
}

// CreateSessionToken signs a 15-day token carrying the user's id, email
// and display name.
func (maker *JWTMaker) CreateSessionToken(id uint, email, name string) (string, *UserClaims, error) {
	return maker.createToken(id, email, name, SessionDuration)
}

// CreateResetToken signs a 1-hour token carrying only the user's id and
// email, for password-reset links.
func (maker *JWTMaker) CreateResetToken(id uint, email string) (string, *UserClaims, error) {
	return maker.createToken(id, email, "", ResetDuration)
}

func (maker *JWTMaker) createToken(id uint, email, name string, duration time.Duration) (string, *UserClaims, error) {
	claims, err := NewUserClaims(id, email, name, duration)
	if err != nil {
		slog.Error("Failed to create claims", "error", err)
		return "", nil, err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(maker.secretKey))
	if err != nil {
		slog.Error("Failed to create token", "error", err)
		return "", nil, err
	}
	return tokenStr, claims, nil
}

// VerifyToken checks signature and expiry and returns the decoded
// claims. Expiry is reported as ErrExpiredToken so callers can answer
// differently for stale reset links.
func (maker *JWTMaker) VerifyToken(tokenStr string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(token *jwt.Token) (any, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(maker.secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
