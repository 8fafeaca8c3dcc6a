package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied replaces the default 403 page
	OnDenied func(c *gin.Context, requiredRoles []string)
}

// RequireAnyRole requires the user to hold at least one of roles
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig is RequireAnyRole with custom config
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		if !claims.HasAnyAuthority(roles...) {
			handleRoleDenied(c, cfg, roles, "User lacks required role")
			return
		}

		c.Next()
	}
}

func handleRoleDenied(c *gin.Context, cfg RoleConfig, roles []string, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Role check failed",
			zap.String("username", GetJWTUsername(c)),
			zap.Strings("required_any", roles),
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	if cfg.OnDenied != nil {
		cfg.OnDenied(c, roles)
		c.Abort()
		return
	}
	RenderErrorPage(c, http.StatusForbidden)
}
