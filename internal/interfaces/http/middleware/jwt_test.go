package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService(t)

	r := newTestEngine()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/refer/referrals/1/status-history", func(c *gin.Context) {
		claims := GetJWTClaims(c)
		require.NotNil(t, claims)
		c.String(http.StatusOK, GetJWTUsername(c)+":"+claims.Name)
	})

	t.Run("accepts a valid token", func(t *testing.T) {
		token := newTestToken(t, svc, "JSMITH", "ROLE_ACP_REFERRER")
		req := httptest.NewRequest(http.MethodGet, "/refer/referrals/1/status-history", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "JSMITH:Test User", w.Body.String())
	})

	t.Run("missing header renders the sign in page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/refer/referrals/1/status-history", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "You need to sign in")
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/refer/referrals/1/status-history", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skips health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestJWTAuthMiddleware_CustomErrorHandler(t *testing.T) {
	cfg := DefaultJWTConfig(newTestJWTService(t))
	var called bool
	cfg.OnError = func(c *gin.Context, err error) {
		called = true
		c.String(http.StatusTeapot, err.Error())
	}

	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestGetters_WithoutAuthentication(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUsername(c))
	assert.Empty(t, GetUserToken(c))
}
