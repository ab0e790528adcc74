package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusops/config"
	"campusops/model"
	"campusops/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type memoryUserStore struct {
	users map[string]*model.User
}

func (s *memoryUserStore) Create(user *model.User, roleIDs []int) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	s.users[user.UserID] = user
	return nil
}

func (s *memoryUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryUserStore) FindByID(id string) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *memoryUserStore) UpdatePassword(id, passwordHash string) error {
	return nil
}

func testAuthService(t *testing.T) (*services.AuthService, *model.User, string) {
	t.Helper()
	store := &memoryUserStore{users: make(map[string]*model.User)}
	auth := services.NewAuthService(store, &config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		BcryptCost:       bcrypt.MinCost,
	})

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)
	return auth, user, tokens.AccessToken
}

func protectedRouter(auth *services.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(auth)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(200, gin.H{"userId": c.MustGet("userId")})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	auth, user, token := testAuthService(t)
	router := protectedRouter(auth)

	// No header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	// Malformed header
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	// Tampered token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)

	// Valid token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), user.UserID)
}

func TestRequireRole(t *testing.T) {
	auth, user, token := testAuthService(t)
	router := protectedRouter(auth, RequireRole("admin"))

	// No admin role yet
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	user.Roles = append(user.Roles, model.Role{RoleID: 1, Name: "admin"})

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	auth, user, token := testAuthService(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/open", OptionalAuth(auth), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.JSON(200, gin.H{"userId": u.UserID})
			return
		}
		c.JSON(200, gin.H{"userId": nil})
	})

	// Anonymous passes through.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/open", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "null")

	// A valid token attaches the user.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), user.UserID)
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := NewRateLimiter(1, 2)
	router.Use(limiter.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// A different client keeps its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}
