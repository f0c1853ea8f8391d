package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/pkg/auth"
	"github.com/veyralabs/veyra/pkg/middleware"
)

func protectedEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromCtx(r.Context())
		require.NotNil(t, claims)
		w.Write([]byte(claims.Email))
	})
}

func TestAuth_AllowsValidBearerToken(t *testing.T) {
	token, err := auth.GenerateToken(3, "admin@veyra.local", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	middleware.Auth(protectedEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@veyra.local", rec.Body.String())
}

func TestAuth_RejectsMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.Auth(protectedEcho(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RejectsBadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rec := httptest.NewRecorder()
	middleware.Auth(protectedEcho(t)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
