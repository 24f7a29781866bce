package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "session_token"
	// LoginFlagCookieName is a short-lived, non-sensitive marker so client
	// code can detect that a login cookie was just written without reading
	// the session cookie itself.
	LoginFlagCookieName = "auth-login-pending"

	// SessionTTL is the session token lifetime.
	SessionTTL = 30 * 24 * time.Hour
	// LoginFlagTTL is the flag cookie lifetime.
	LoginFlagTTL = 60 * time.Second
)

// SessionUser is the user shape embedded in the session token. The decoder
// expects both "id" and "sub" to carry the user id.
type SessionUser struct {
	ID          string
	Username    string
	Email       string
	PhoneNumber string
}

// SessionClaims is the full session token payload.
type SessionClaims struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Picture     *string `json:"picture"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies session tokens. Unlike the usual
// bearer-token setup this token is exchanged via a cookie, but both issuance
// paths (OTP verification and direct login) must produce the exact same
// shape, so they both go through Issue.
type SessionManager struct {
	secretKey []byte
	ttl       time.Duration
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secretKey: []byte(secret), ttl: SessionTTL}
}

// Issue builds a signed session token for a verified user.
func (m *SessionManager) Issue(u SessionUser) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		ID:          u.ID,
		Name:        u.Username,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Picture:     nil,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Verify parses and validates a session token.
func (m *SessionManager) Verify(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if claims.ID == "" || claims.Subject != claims.ID {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}
