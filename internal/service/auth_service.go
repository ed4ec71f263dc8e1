package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is how long an issued token stays valid.
const TokenExpiry = 7 * time.Hour

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingEmail  = errors.New("identity is missing an email")
	ErrMissingSecret = errors.New("signing secret is not configured")
)

// AuthService issues and verifies the signed identity tokens used by the
// authorization gates.
type AuthService interface {
	IssueToken(identity map[string]interface{}) (string, error)
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

type authService struct {
	secret string
	expiry time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(secret string, expiry time.Duration) AuthService {
	if expiry <= 0 {
		expiry = TokenExpiry
	}
	return &authService{secret: secret, expiry: expiry}
}

// IssueToken signs the caller-supplied identity object. The identity must
// at least carry an email, since the gates key every role lookup on it.
// Note that nothing here proves the caller owns that email; the endpoint
// trusts the client, which is a known gap carried over from the site's
// sign-in flow (see README).
func (s *authService) IssueToken(identity map[string]interface{}) (string, error) {
	if s.secret == "" {
		return "", ErrMissingSecret
	}

	email, _ := identity["email"].(string)
	if email == "" {
		return "", ErrMissingEmail
	}

	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.expiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies the signature and expiry and returns the
// decoded claims.
func (s *authService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
