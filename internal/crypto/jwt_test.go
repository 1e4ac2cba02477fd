package crypto

import (
	"testing"
	"time"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-access-secret", "test-refresh-secret")
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("GenerateTokenPair() returned empty token")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh token should differ")
	}
}

func TestVerifyAccessToken(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}

	claims, err := svc.VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken() unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "alice" {
		t.Errorf("claims.Username = %q, want %q", claims.Username, "alice")
	}
}

func TestVerifyTokenKindsAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}

	if _, err := svc.VerifyAccessToken(pair.RefreshToken); err == nil {
		t.Error("refresh token passed access verification")
	}
	if _, err := svc.VerifyRefreshToken(pair.AccessToken); err == nil {
		t.Error("access token passed refresh verification")
	}
}

func TestVerifyAccessTokenMalformed(t *testing.T) {
	svc := newTestTokenService()

	if _, err := svc.VerifyAccessToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.VerifyAccessToken(""); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService("different-access-secret", "different-refresh-secret")

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}

	if _, err := other.VerifyAccessToken(pair.AccessToken); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.sign("user-1", "alice", svc.accessSecret, -time.Minute)
	if err != nil {
		t.Fatalf("sign() unexpected error: %v", err)
	}

	if _, err := svc.VerifyAccessToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenExpiration(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}

	exp, ok := TokenExpiration(pair.AccessToken)
	if !ok {
		t.Fatal("TokenExpiration() failed to decode a fresh token")
	}

	want := time.Now().Add(AccessTokenTTL)
	if diff := exp.Sub(want); diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("expiration %v too far from expected %v", exp, want)
	}
}

func TestTokenExpirationUndecodable(t *testing.T) {
	if _, ok := TokenExpiration("garbage"); ok {
		t.Error("TokenExpiration() decoded garbage")
	}
}

func TestIsTokenExpired(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.GenerateTokenPair("user-1", "alice")
	if err != nil {
		t.Fatalf("GenerateTokenPair() unexpected error: %v", err)
	}
	if IsTokenExpired(pair.AccessToken) {
		t.Error("fresh token reported expired")
	}

	expired, err := svc.sign("user-1", "alice", svc.accessSecret, -time.Minute)
	if err != nil {
		t.Fatalf("sign() unexpected error: %v", err)
	}
	if !IsTokenExpired(expired) {
		t.Error("expired token reported valid")
	}

	if !IsTokenExpired("garbage") {
		t.Error("undecodable token should count as expired")
	}
}
