package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/tandemchat/tandem/internal/domain"
	"github.com/tandemchat/tandem/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth resolves the bearer token to a live user on every request. Token
// signature validity alone is not enough; the subject must still exist in
// the credential store.
//
// An absent header is 401; a header that is present but not of the form
// "Bearer <token>" is 403.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				http.Error(w, "Invalid authorization header", http.StatusForbidden)
				return
			}

			user, err := authService.ResolveToken(r.Context(), parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token resolution failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
