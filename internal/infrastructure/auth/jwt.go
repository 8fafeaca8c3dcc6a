package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/acp/web/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUsername  = errors.New("missing user_name in claims")
)

// Claims are the claims carried by a user access token issued by HMPPS Auth
type Claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"user_name"`
	Name        string   `json:"name,omitempty"`
	AuthSource  string   `json:"auth_source,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
}

// JWTService validates user access tokens. With a public key configured it
// accepts only RS256 tokens signed by HMPPS Auth; otherwise it accepts HS256
// tokens signed with the shared secret.
type JWTService struct {
	secret     []byte
	publicKey  *rsa.PublicKey
	expiration time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.AuthConfig) (*JWTService, error) {
	s := &JWTService{
		secret:     []byte(cfg.JWTSecret),
		expiration: time.Hour,
	}
	if cfg.PublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("parse auth public key: %w", err)
		}
		s.publicKey = key
	}
	return s, nil
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	Username    string
	Name        string
	AuthSource  string
	Authorities []string
}

// GenerateToken signs a user token. Production tokens come from HMPPS Auth;
// this exists for local development and tests.
func (s *JWTService) GenerateToken(input GenerateTokenInput) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   input.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username:    input.Username,
		Name:        input.Name,
		AuthSource:  input.AuthSource,
		Authorities: input.Authorities,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a user token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Username == "" {
		return nil, ErrMissingUsername
	}

	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (any, error) {
	if s.publicKey != nil {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return s.publicKey, nil
	}
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.secret, nil
}

// HasAuthority checks if the claims contain a specific role
func (c *Claims) HasAuthority(role string) bool {
	for _, a := range c.Authorities {
		if a == role {
			return true
		}
	}
	return false
}

// HasAnyAuthority checks if the claims contain any of the given roles
func (c *Claims) HasAnyAuthority(roles ...string) bool {
	for _, role := range roles {
		if c.HasAuthority(role) {
			return true
		}
	}
	return false
}

// GetExpiresAtTime returns the token's expiration time
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}
