package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/veyralabs/veyra/pkg/auth"
	"github.com/veyralabs/veyra/pkg/response"
)

type claimsKey struct{}

// Auth guards the admin surface. Requests without a valid bearer token are
// rejected with 401 before they reach any controller.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the claims stored by Auth, or nil on unguarded routes.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}
