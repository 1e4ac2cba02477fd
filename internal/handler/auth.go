package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/weighttrack/weighttrack-go/internal/crypto"
	"github.com/weighttrack/weighttrack-go/internal/middleware"
	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
	secure  bool
}

// NewAuthHandler creates a new AuthHandler. secure controls the Secure
// attribute on auth cookies and should be true in production.
func NewAuthHandler(svc *service.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{service: svc, secure: secure}
}

// HandleSignup handles POST /api/v1/auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := h.service.Signup(r.Context(), req)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &validationErr):
			writeErrorDetails(w, http.StatusBadRequest, validationErr.Message, validationErr.Details)
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	setAuthCookies(w, pair, h.secure)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    model.PublicUser(user),
	})
}

// HandleLogin handles POST /api/v1/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	setAuthCookies(w, pair, h.secure)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    model.PublicUser(user),
	})
}

// HandleLogout handles POST /api/v1/auth/logout requests. It always
// succeeds, whether or not a session exists.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookies(w, h.secure)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleRefresh handles POST /api/v1/auth/refresh requests. A valid refresh
// cookie yields a brand-new token pair; the old refresh token is not re-issued.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "refresh token not found")
		return
	}

	user, pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusUnauthorized, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	setAuthCookies(w, pair, h.secure)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    model.PublicUser(user),
	})
}

// HandleMe handles GET /api/v1/auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	authUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.GetUser(r.Context(), authUser.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    model.PublicUser(user),
	})
}
