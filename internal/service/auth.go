package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/weighttrack/weighttrack-go/internal/crypto"
	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
)

// ValidationError carries the full list of input violations so the client
// can show them all at once.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d violation(s)", e.Message, len(e.Details))
}

// UserStore is the persistence boundary for users.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles signup, login, refresh, and user resolution.
type AuthService struct {
	users  UserStore
	tokens *crypto.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *crypto.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup validates credentials, creates the user, and mints a token pair.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, crypto.TokenPair, error) {
	if req.Username == "" || req.Password == "" {
		return nil, crypto.TokenPair{}, ErrCredentialsRequired
	}

	if result := crypto.ValidateUsername(req.Username); !result.Valid {
		return nil, crypto.TokenPair{}, &ValidationError{Message: "invalid username", Details: result.Errors}
	}
	if result := crypto.ValidatePassword(req.Password); !result.Valid {
		return nil, crypto.TokenPair{}, &ValidationError{Message: "password does not meet requirements", Details: result.Errors}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, crypto.TokenPair{}, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, crypto.TokenPair{}, ErrUsernameTaken
		}
		return nil, crypto.TokenPair{}, err
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, crypto.TokenPair{}, err
	}

	return user, pair, nil
}

// Login authenticates a user by username and password. Unknown usernames
// and wrong passwords produce the identical error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, crypto.TokenPair, error) {
	if req.Username == "" || req.Password == "" {
		return nil, crypto.TokenPair{}, ErrCredentialsRequired
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, crypto.TokenPair{}, ErrInvalidCredentials
		}
		return nil, crypto.TokenPair{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, crypto.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, crypto.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh verifies a refresh token, re-confirms the user still exists, and
// mints a brand-new token pair. The old refresh token is never re-issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.User, crypto.TokenPair, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, crypto.TokenPair{}, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			slog.Warn("refresh token references deleted user", "user_id", claims.UserID)
			return nil, crypto.TokenPair{}, ErrUserNotFound
		}
		return nil, crypto.TokenPair{}, err
	}

	pair, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, crypto.TokenPair{}, err
	}

	return user, pair, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
