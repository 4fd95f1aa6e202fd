package service

import (
	"fmt"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

type TokenConfig struct {
	SigningKey string
	TTL        time.Duration
}

// TokenService issues HS256 tokens carrying the caller's session.
type TokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{key: []byte(cfg.SigningKey), ttl: ttl, now: time.Now}
}

var _ Tokens = (*TokenService)(nil)

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
}

func (s *TokenService) IssueToken(sess authz.Session) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", sess.UserID),
		},
		UserID: sess.UserID,
		Role:   sess.Role,
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature and expiry. Every failure is Unauthorized.
func (s *TokenService) ParseToken(accessToken string) (authz.Session, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return authz.Session{}, apperr.Unauthorized()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return authz.Session{}, apperr.Unauthorized()
	}
	return authz.Session{UserID: claims.UserID, Role: claims.Role}, nil
}
