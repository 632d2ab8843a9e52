package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenDuration is how long an issued token stays valid.
const DefaultTokenDuration = time.Hour

var errEmptyIdentity = errors.New("identity must not be empty")

// TokenService issues and validates signed tokens for an identity
type TokenService interface {
	Issue(identity string, now time.Time) (string, error)
	Validate(token string, now time.Time) (string, error)
	Refresh(token string, now time.Time) (string, error)
}

// JWTManager handles creation and verification of JWT tokens.
// It holds no mutable state and is safe for concurrent use.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims contains JWT claims. Only "user" and "exp" are ever set.
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(secretKey string, duration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: duration,
	}
}

// TokenDuration returns the lifetime of issued tokens
func (j *JWTManager) TokenDuration() time.Duration {
	return j.tokenDuration
}

// Issue creates a signed token for identity expiring tokenDuration after now
func (j *JWTManager) Issue(identity string, now time.Time) (string, error) {
	if identity == "" {
		return "", errEmptyIdentity
	}

	claims := &Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses tokenString, checks its signature and expiry as of now and
// returns the embedded identity. Expired tokens yield ErrTokenExpired, every
// other failure yields ErrTokenInvalid.
func (j *JWTManager) Validate(tokenString string, now time.Time) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.User == "" {
		return "", ErrTokenInvalid
	}

	return claims.User, nil
}

func (j *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	// Ensure signing method is HMAC
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return j.secretKey, nil
}

// Refresh validates tokenString and issues a new token for the same identity.
// The presented token is left untouched and stays valid until it expires.
func (j *JWTManager) Refresh(tokenString string, now time.Time) (string, error) {
	identity, err := j.Validate(tokenString, now)
	if err != nil {
		return "", err
	}
	return j.Issue(identity, now)
}
