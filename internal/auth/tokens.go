package auth

import (
	"context"
	"fmt"
	"time"

	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the signed identity of an authenticated user
type Claims struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   types.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access tokens. When a session store is
// configured, signout revokes tokens by blacklisting their jti; without one
// tokens stay valid until expiry.
type TokenManager struct {
	secret   []byte
	tokenTTL time.Duration
	sessions *SessionStore
}

// NewTokenManager creates a token manager from configuration
func NewTokenManager(cfg config.AuthConfig, sessions *SessionStore) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.AccessTokenTTL,
		sessions: sessions,
	}
}

// Issue signs a new access token for the given user
func (m *TokenManager) Issue(userID uuid.UUID, role types.UserRole) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", hiremateErrors.NewInternalError("TOKEN_SIGN_FAILED",
			"Failed to sign access token", err)
	}

	return signed, nil
}

// Verify parses and validates an access token, rejecting revoked tokens when
// a session store is configured
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected HMAC algorithm: %v", method.Alg())
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, hiremateErrors.NewAuthError(hiremateErrors.ErrCodeInvalidCredentials,
			"Invalid or expired token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, hiremateErrors.NewAuthError(hiremateErrors.ErrCodeInvalidCredentials,
			"Invalid token claims", nil)
	}

	revoked, err := m.sessions.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, hiremateErrors.NewAuthError(hiremateErrors.ErrCodeInvalidCredentials,
			"Token has been revoked", nil)
	}

	return claims, nil
}

// Revoke blacklists a token until its natural expiry. A no-op without a
// session store.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return m.sessions.RevokeToken(ctx, claims.ID, expiresAt)
}
