package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireAnyRole(t *testing.T) {
	svc := newTestJWTService(t)

	r := newTestEngine()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/assess/x", RequireAnyRole(presenter.Assess.Roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		roles    []string
		expected int
	}{
		{"holds role", []string{presenter.RoleProgrammeTeam}, http.StatusOK},
		{"holds one of several", []string{"ROLE_OTHER", presenter.RoleProgrammeTeam}, http.StatusOK},
		{"wrong role", []string{presenter.RoleReferrer}, http.StatusForbidden},
		{"no roles", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/assess/x", nil)
			req.Header.Set(AuthHeaderKey, BearerPrefix+newTestToken(t, svc, "USER", tt.roles...))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
			if tt.expected == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "You do not have permission to view this page")
			}
		})
	}
}

func TestRequireAnyRole_NoClaims(t *testing.T) {
	var denied []string
	r := gin.New()
	r.GET("/x", RequireAnyRoleWithConfig(RoleConfig{
		OnDenied: func(c *gin.Context, roles []string) {
			denied = roles
			c.Status(http.StatusForbidden)
		},
	}, presenter.RoleReferrer), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{presenter.RoleReferrer}, denied)
}
