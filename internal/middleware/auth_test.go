package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/stevenshelley58-afk/redner-vault/internal/config"
	"github.com/stevenshelley58-afk/redner-vault/internal/middleware"
)

func newAuthRouter(cfg *config.Config, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := newAuthRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := newAuthRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := newAuthRouter(cfg, okHandler)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-123"})
	tokenString, _ := token.SignedString([]byte("a-different-secret"))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MissingSubject(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}
	router := newAuthRouter(cfg, okHandler)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "client@example.com"})
	tokenString, _ := token.SignedString([]byte(cfg.SupabaseJWTSecret))

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-123",
		"email": "client@example.com",
	})
	tokenString, _ := token.SignedString([]byte(cfg.SupabaseJWTSecret))

	router := newAuthRouter(cfg, func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		assert.True(t, exists)
		assert.Equal(t, "user-123", userID)

		email, exists := c.Get(middleware.UserEmailKey)
		assert.True(t, exists)
		assert.Equal(t, "client@example.com", email)

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
