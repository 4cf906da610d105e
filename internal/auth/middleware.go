package auth

import (
	"context"
	"net/http"
	"strings"

	"cavreg/internal/models"
)

type contextKey string

const UserContextKey contextKey = "user"

func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) *Claims {
	claims, _ := ctx.Value(UserContextKey).(*Claims)
	return claims
}

// Identity converts the request claims to the explicit actor value the
// service layer takes. Zero when the request is unauthenticated.
func Identity(ctx context.Context) models.Identity {
	claims := GetUser(ctx)
	if claims == nil {
		return models.Identity{}
	}
	return models.Identity{UserID: claims.UserID, Email: claims.Email}
}
