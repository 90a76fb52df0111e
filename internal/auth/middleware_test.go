package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(authenticators ...Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(authenticators...))
	router.GET("/whoami", func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})
	return router
}

func TestMiddleware(t *testing.T) {
	local := NewLocalSession(testSecret)
	router := setupRouter(local)

	t.Run("Missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token", func(t *testing.T) {
		token, err := GenerateAccessToken(5, "m@example.com", RoleMember, testSecret)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":5`)
	})

	t.Run("Garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMiddlewareProbesAuthenticatorsInOrder(t *testing.T) {
	// second authenticator accepts what the first rejects
	localA := NewLocalSession("secret-a")
	localB := NewLocalSession("secret-b")
	router := setupRouter(localA, localB)

	token, err := GenerateAccessToken(11, "b@example.com", RoleTrainer, "secret-b")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":11`)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	local := NewLocalSession(testSecret)
	router := gin.New()
	router.Use(Middleware(local))

	adminOnly := router.Group("/admin")
	adminOnly.Use(RequireRole(RoleAdmin))
	adminOnly.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("Admin allowed", func(t *testing.T) {
		token, _ := GenerateAccessToken(1, "a@example.com", RoleAdmin, testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Member forbidden", func(t *testing.T) {
		token, _ := GenerateAccessToken(2, "m@example.com", RoleMember, testSecret)
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin/ping", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
