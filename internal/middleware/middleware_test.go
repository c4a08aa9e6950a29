package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa_backend/internal/middleware"
	"villa_backend/pkg/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(verifier *utils.TokenVerifier, roles ...string) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(verifier)}
	if len(roles) > 0 {
		chain = append(chain, middleware.RoleAuthMiddleware(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   c.GetInt64(middleware.UserIDKey),
			"username": c.GetString(middleware.UsernameKey),
			"role":     c.GetString(middleware.UserRoleKey),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	verifier := utils.NewTokenVerifier(testSecret, "villa")
	valid, err := verifier.GenerateAccessToken(7, "ayu", "STAFF", time.Hour)
	require.NoError(t, err)
	expired, err := verifier.GenerateAccessToken(7, "ayu", "STAFF", -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.NewTokenVerifier("other-secret", "villa").GenerateAccessToken(7, "ayu", "STAFF", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	r := newProtectedRouter(verifier)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"userId":7,"username":"ayu","role":"STAFF"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), utils.ErrCodeUnauthorized)
			}
		})
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	verifier := utils.NewTokenVerifier(testSecret, "")
	admin, err := verifier.GenerateAccessToken(1, "root", "admin", time.Hour)
	require.NoError(t, err)
	staff, err := verifier.GenerateAccessToken(2, "ayu", "STAFF", time.Hour)
	require.NoError(t, err)

	r := newProtectedRouter(verifier, middleware.RoleAdmin)

	assert.Equal(t, http.StatusOK, doRequest(r, "Bearer "+admin).Code)

	w := doRequest(r, "Bearer "+staff)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), utils.ErrCodeForbidden)
}

func TestRoleAuthMiddleware_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/protected", middleware.RoleAuthMiddleware(middleware.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusForbidden, doRequest(r, "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(utils.RequestIDKey))
	})

	t.Run("generates", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))

		id := w.Header().Get(utils.RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagates inbound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set(utils.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(utils.RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("replaces oversized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set(utils.RequestIDHeader, strings.Repeat("x", 500))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(utils.RequestIDHeader), 36)
	})
}
