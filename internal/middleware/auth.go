package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/weighttrack/weighttrack-go/internal/crypto"
	"github.com/weighttrack/weighttrack-go/internal/model"
)

// Cookie names shared by the session middleware and the auth handlers.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type contextKey string

const userKey contextKey = "user"

// AuthUser is the resolved identity attached to authenticated requests.
type AuthUser struct {
	ID       string
	Username string
}

// UserGetter resolves a user ID to a user record. A lookup failure means
// the token holder no longer has an account.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SessionAuth returns middleware that authenticates requests from the
// access-token cookie. A missing cookie, an invalid or expired token, or a
// token referencing a deleted user all end the request with 401; otherwise
// the resolved user is attached to the context.
func SessionAuth(tokens *crypto.TokenService, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				writeUnauthorized(w, "access token not found")
				return
			}

			claims, err := tokens.VerifyAccessToken(cookie.Value)
			if err != nil {
				writeUnauthorized(w, "invalid access token")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				writeUnauthorized(w, "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, AuthUser{
				ID:       user.ID,
				Username: user.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(userKey).(AuthUser)
	return user, ok
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
