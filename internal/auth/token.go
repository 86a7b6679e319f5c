package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"docportal/internal/model"
)

// ErrInvalidToken covers every reason a session token is not accepted.
var ErrInvalidToken = errors.New("invalid or expired session")

type claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager returns a manager issuing tokens valid for ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for u and returns the session it represents.
func (m *TokenManager) Issue(u *model.User) (string, *model.SessionUser, error) {
	if len(m.secret) == 0 {
		return "", nil, errors.New("jwt secret not configured")
	}
	now := m.now().UTC()
	jti := uuid.NewString()
	cl := claims{
		UserID:   u.ID,
		Username: u.Username,
		Name:     u.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        jti,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, &model.SessionUser{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		TokenID:   jti,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Parse validates signature and expiry. Revocation is checked separately against a Blacklist.
func (m *TokenManager) Parse(raw string) (*model.SessionUser, error) {
	var cl claims
	tkn, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if cl.ID == "" || cl.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return &model.SessionUser{
		ID:        cl.UserID,
		Username:  cl.Username,
		FullName:  cl.Name,
		TokenID:   cl.ID,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}
