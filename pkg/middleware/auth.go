package middleware

import (
	"fmt"
	"strings"
	"time"

	"colonywars/pkg/config"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the wallet session token.
const SessionCookieName = "colonywars_session"

// WalletSession is the authenticated caller of a war action: the wallet
// address controlling one or more colonies.
type WalletSession struct {
	Wallet    string    `json:"wallet"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WalletClaims is the JWT claim set issued by the platform's login service.
type WalletClaims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates wallet session tokens for API operations.
type AuthMiddleware struct {
	secret []byte
}

// NewAuthMiddleware creates the auth middleware. The signing secret is
// shared with the platform login service via JWT_SECRET.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(config.GetEnv("JWT_SECRET", "")),
	}
}

// ValidateAuthFromHeaders validates authentication from request headers,
// trying the Authorization bearer token first and the session cookie second.
func (m *AuthMiddleware) ValidateAuthFromHeaders(authHeader, cookieHeader string) (*WalletSession, error) {
	token := m.ExtractTokenFromHeaders(authHeader)
	if token == "" && cookieHeader != "" {
		token = m.ExtractTokenFromCookie(cookieHeader)
	}
	if token == "" {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	session, err := m.ValidateToken(token)
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid authentication token", err)
	}
	return session, nil
}

// ValidateToken parses and verifies a wallet session JWT.
func (m *AuthMiddleware) ValidateToken(tokenString string) (*WalletSession, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	claims := &WalletClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid || claims.Wallet == "" {
		return nil, fmt.Errorf("session token is invalid")
	}

	session := &WalletSession{Wallet: claims.Wallet}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// ExtractTokenFromHeaders extracts the JWT from an Authorization header.
func (m *AuthMiddleware) ExtractTokenFromHeaders(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// ExtractTokenFromCookie extracts the JWT from the session cookie.
func (m *AuthMiddleware) ExtractTokenFromCookie(cookieHeader string) string {
	for _, cookie := range strings.Split(cookieHeader, ";") {
		cookie = strings.TrimSpace(cookie)
		if strings.HasPrefix(cookie, SessionCookieName+"=") {
			return strings.TrimPrefix(cookie, SessionCookieName+"=")
		}
	}
	return ""
}
