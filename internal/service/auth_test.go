package service

import (
	"context"
	"errors"
	"testing"

	"github.com/weighttrack/weighttrack-go/internal/crypto"
	"github.com/weighttrack/weighttrack-go/internal/model"
)

func newTestAuthService() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	tokens := crypto.NewTokenService("test-access-secret", "test-refresh-secret")
	return NewAuthService(users, tokens), users
}

func TestSignupMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "", Password: "Abcdef1!"})
	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}

	_, _, err = svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: ""})
	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("expected ErrCredentialsRequired, got %v", err)
	}
}

func TestSignupInvalidUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "_x", Password: "Abcdef1!"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validationErr.Details) == 0 {
		t.Error("expected violation details")
	}
}

func TestSignupWeakPassword(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "weak"})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSignupThenGetUser(t *testing.T) {
	svc, _ := newTestAuthService()

	user, pair, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Signup() returned empty token pair")
	}
	if user.PasswordHash == "Abcdef1!" {
		t.Fatal("password stored in plaintext")
	}

	// A fresh signup immediately resolves to the same handle.
	got, err := svc.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("GetUser().Username = %q, want %q", got.Username, "alice")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"}); err != nil {
		t.Fatalf("first Signup() unexpected error: %v", err)
	}

	_, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Xyzdef2@"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"}); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	user, pair, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "Abcdef1!"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Login().Username = %q, want %q", user.Username, "alice")
	}
	if pair.AccessToken == "" {
		t.Error("Login() returned empty access token")
	}
}

func TestLoginEnumerationResistance(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, _, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"}); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "Wrong-pass1"})
	_, _, unknownUser := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "Abcdef1!"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassword.Error(), unknownUser.Error())
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestAuthService()

	_, pair, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	user, newPair, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Refresh() user = %q, want %q", user.Username, "alice")
	}
	if newPair.AccessToken == "" || newPair.RefreshToken == "" {
		t.Fatal("Refresh() returned empty pair")
	}

	// The old access token is not proactively revoked; it stays valid
	// until its own expiry.
	tokens := crypto.NewTokenService("test-access-secret", "test-refresh-secret")
	if _, err := tokens.VerifyAccessToken(pair.AccessToken); err != nil {
		t.Errorf("old access token should still verify after refresh: %v", err)
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Refresh(context.Background(), "garbage")
	if !errors.Is(err, crypto.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService()

	_, pair, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	if _, _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, crypto.ErrInvalidToken) {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
}

func TestRefreshDeletedUser(t *testing.T) {
	svc, users := newTestAuthService()

	user, pair, err := svc.Signup(context.Background(), model.SignupRequest{Username: "alice", Password: "Abcdef1!"})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	users.delete(user.ID)

	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for deleted user, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
