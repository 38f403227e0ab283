package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/kwitansi-api/internal/domain/enum"
	"github.com/sangkips/kwitansi-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "admin@example.com", "admin")
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(jwtManager))
	r.GET("/me", func(c *gin.Context) {
		assert.Equal(t, userID, userIDFrom(c))
		assert.Equal(t, "admin@example.com", c.GetString(UserEmailKey))
		role, _ := c.Get(UserRoleKey)
		assert.Equal(t, enum.UserRoleAdmin, role)
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "Authorization", "Token "+token).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/me", "Authorization", "Bearer "+token).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/me", "Authorization", "bearer "+token).Code)
}

func TestRequireRole(t *testing.T) {
	newRouter := func(role enum.UserRole) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) { c.Set(UserRoleKey, role) })
		r.Use(RequireRole(enum.UserRoleAdmin))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	assert.Equal(t, http.StatusOK, serve(newRouter(enum.UserRoleAdmin), http.MethodGet, "/users").Code)
	assert.Equal(t, http.StatusForbidden, serve(newRouter(enum.UserRoleBendahara), http.MethodGet, "/users").Code)
}

func TestUserRateLimiter(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2, EntryTTL: time.Minute})

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/").Code)

	w := serve(r, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, 1, rl.Stats()["active_clients"])
}

func TestUserRateLimiterCleanup(t *testing.T) {
	rl := NewUserRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute})
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.getLimiter("user:a")
	now = now.Add(2 * time.Minute)
	rl.getLimiter("user:b")

	assert.Equal(t, 1, rl.cleanup())
	assert.Equal(t, 1, rl.Stats()["active_clients"])
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(120, 60)
	assert.Equal(t, 2.0, cfg.RequestsPerSecond)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFrom(0, 60))
}
