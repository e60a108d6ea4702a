// Package auth issues and verifies the signed credential tokens used for
// session authentication, email verification and password reset. All tokens
// share one secret and one algorithm (HS256); they are told apart by a
// purpose claim, not by payload shape.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shuvam021/fundoo-v3/internal/apperr"
)

// Purpose binds a token to the single flow it is valid for.
type Purpose string

const (
	PurposeAccess  Purpose = "access"
	PurposeRefresh Purpose = "refresh"
	PurposeVerify  Purpose = "verify"
	PurposeReset   Purpose = "reset"
)

// Claims carries the registered claims plus the purpose marker.
type Claims struct {
	jwt.RegisteredClaims
	Purpose Purpose `json:"purpose"`
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Manager signs and verifies credential tokens with a shared secret.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager bound to the given secret
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

func (m *Manager) ttl(p Purpose) time.Duration {
	switch p {
	case PurposeRefresh:
		return 7 * 24 * time.Hour
	case PurposeVerify:
		return 24 * time.Hour
	case PurposeReset:
		return 15 * time.Minute
	default:
		return time.Hour
	}
}

// Issue creates a signed token for the given user and purpose.
func (m *Manager) Issue(userID int64, purpose Purpose) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl(purpose))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Purpose: purpose,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// IssuePair creates an access and refresh token for the given user.
func (m *Manager) IssuePair(userID int64) (*TokenPair, error) {
	access, err := m.Issue(userID, PurposeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := m.Issue(userID, PurposeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, expiry and purpose, and returns the subject user
// id. An expired signature yields apperr.ErrTokenExpired; every other defect
// (bad signature, wrong algorithm, wrong purpose, garbage input) yields
// apperr.ErrTokenInvalid.
func (m *Manager) Verify(raw string, purpose Purpose) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.ErrTokenExpired
		}
		return 0, apperr.ErrTokenInvalid
	}
	if !token.Valid || claims.Purpose != purpose {
		return 0, apperr.ErrTokenInvalid
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.ErrTokenInvalid
	}
	return userID, nil
}

// ParseBearer extracts the token from an Authorization header value. An empty
// header means the caller is anonymous (ok=false, no error); anything present
// must be exactly "Bearer <token>" or it is a hard authentication failure.
func ParseBearer(header string) (token string, ok bool, err error) {
	if header == "" {
		return "", false, nil
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false, fmt.Errorf("malformed authorization header: %w", apperr.ErrTokenInvalid)
	}
	return parts[1], true, nil
}
