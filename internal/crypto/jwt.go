package crypto

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Token lifetimes. Access tokens are short-lived; refresh tokens carry the
// session across access expiry.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims represents the JWT claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// TokenPair bundles a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs and verifies access and refresh tokens. The two kinds
// use distinct secrets so a refresh token can never pass as an access token.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenService creates a TokenService from the two signing secrets.
func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// GenerateTokenPair mints a new access/refresh token pair for the given user.
func (s *TokenService) GenerateTokenPair(userID, username string) (TokenPair, error) {
	access, err := s.sign(userID, username, s.accessSecret, AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.sign(userID, username, s.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates an access token and returns its claims.
// All failures collapse into ErrInvalidToken; the cause is logged only.
func (s *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	claims, err := s.verify(token, s.accessSecret)
	if err != nil {
		slog.Debug("access token verification failed", "error", err)
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (s *TokenService) VerifyRefreshToken(token string) (*Claims, error) {
	claims, err := s.verify(token, s.refreshSecret)
	if err != nil {
		slog.Debug("refresh token verification failed", "error", err)
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenExpiration decodes a token without verifying its signature and
// returns its expiry. The zero time and false mean the token is undecodable
// or carries no expiry.
func TokenExpiration(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// IsTokenExpired reports whether a token's expiry is unknown or in the past.
func IsTokenExpired(token string) bool {
	exp, ok := TokenExpiration(token)
	if !ok {
		return true
	}
	return exp.Before(time.Now())
}

func (s *TokenService) sign(userID, username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
