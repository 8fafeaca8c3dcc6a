package middleware

import (
	"net/http"
	"strings"

	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/infrastructure/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey is the gin context key holding the request's *session.Session
const SessionKey = "session"

// SessionConfig holds configuration for the session middleware
type SessionConfig struct {
	Manager    *session.Manager
	Signer     *session.CookieSigner
	CookieName string
	Secure     bool
	SameSite   http.SameSite
}

// ParseSameSite maps a config value onto http.SameSite
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// Session loads the session named by the signed cookie, makes it available
// to handlers and saves it once they return. A missing or tampered cookie
// starts a new session.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var id string
		if raw, err := c.Cookie(cfg.CookieName); err == nil {
			if verified, err := cfg.Signer.Verify(raw); err == nil {
				id = verified
			} else {
				logger.L(ctx).Info("Ignoring invalid session cookie", zap.Error(err))
			}
		}

		sess, err := cfg.Manager.Load(ctx, id)
		if err != nil {
			_ = c.Error(err)
			RenderErrorPage(c, http.StatusInternalServerError)
			return
		}

		// The cookie must be written before handlers commit the response.
		// It lives for the browser session; idle expiry is the store TTL,
		// which every save refreshes.
		if sess.IsNew() {
			c.SetSameSite(cfg.SameSite)
			c.SetCookie(cfg.CookieName, cfg.Signer.Sign(sess.ID()), 0, "/", "", cfg.Secure, true)
		}

		c.Set(SessionKey, sess)
		c.Next()

		if !sess.IsNew() && !sess.Modified() {
			return
		}
		if err := cfg.Manager.Save(ctx, sess); err != nil {
			logger.L(ctx).Error("Failed to save session", zap.String("session_id", sess.ID()), zap.Error(err))
		}
	}
}

// GetSession returns the request's session. Handlers mounted behind the
// Session middleware can rely on it being non-nil.
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
