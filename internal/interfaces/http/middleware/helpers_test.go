package middleware

import (
	"testing"
	"time"

	"github.com/acp/web/internal/infrastructure/auth"
	"github.com/acp/web/internal/infrastructure/config"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key-at-least-32-chars"

func newTestEngine() *gin.Engine {
	r := gin.New()
	r.HTMLRender = views.MustNewRenderer()
	return r
}

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, Timeout: time.Second})
	require.NoError(t, err)
	return svc
}

func newTestToken(t *testing.T, svc *auth.JWTService, username string, roles ...string) string {
	t.Helper()
	token, err := svc.GenerateToken(auth.GenerateTokenInput{
		Username:    username,
		Name:        "Test User",
		AuthSource:  "nomis",
		Authorities: roles,
	})
	require.NoError(t, err)
	return token
}
