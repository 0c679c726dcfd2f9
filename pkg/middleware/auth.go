package middleware

import (
	"context"
	"net/http"

	jwtutil "github.com/devconnect-app/backend/pkg/jwt"
	"github.com/devconnect-app/backend/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// AuthMiddleware authenticates requests from the session cookie and stores
// the token claims in the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				logger.Log.Warn("Missing session cookie")
				http.Error(w, "Unauthorized: please login", http.StatusUnauthorized)
				return
			}

			claims, err := jwtutil.ParseToken(cookie.Value, jwtSecret)
			if err != nil {
				logger.Log.WithError(err).Warn("Invalid session token")
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user's claims, or nil when
// the request was not authenticated.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}
