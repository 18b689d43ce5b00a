package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/response"
)

type stubResolver struct {
	user models.User
	err  error
}

func (s stubResolver) Resolve(context.Context, string) (models.User, error) {
	return s.user, s.err
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestUserAuthAttachesUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alice := models.User{ID: primitive.NewObjectID(), Username: "alice"}

	r := gin.New()
	r.GET("/me", UserAuth(stubResolver{user: alice}), func(c *gin.Context) {
		user, ok := auth.UserFrom(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, user.Username)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestUserAuthShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false

	r := gin.New()
	r.GET("/me", UserAuth(stubResolver{err: apperr.Unauthorized("Unauthorized, invalid token")}), func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)

	env := envelope(t, w)
	assert.Equal(t, response.StatusFailed, env.Status)
	assert.Nil(t, env.Data)
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(user models.User) int {
		r := gin.New()
		r.GET("/admin", UserAuth(stubResolver{user: user}), AdminOnly(), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, run(models.User{ID: primitive.NewObjectID()}))
	assert.Equal(t, http.StatusNoContent, run(models.User{ID: primitive.NewObjectID(), IsAdmin: true}))
	assert.Equal(t, http.StatusNoContent, run(models.User{ID: primitive.NewObjectID(), IsSuperAdmin: true}))
}

func TestRequestIDAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, apperr.InternalMessage, envelope(t, w).Msg)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.POST("/api/products", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, X-Request-ID")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), http.CanonicalHeaderKey(RequestIDHeader))
	assert.Equal(t, "300", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
