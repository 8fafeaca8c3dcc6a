package handler

import (
	"errors"
	"net/http"

	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/infrastructure/session"
	"github.com/acp/web/internal/interfaces/http/middleware"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errNoSession is returned when a handler is mounted without the session middleware
var errNoSession = errors.New("handler: no session on request")

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// requestScope is what every referral page needs to know about the request
type requestScope struct {
	journey    presenter.Journey
	referralID string
	username   string
	userToken  string
	session    *session.Session
}

// scopeOf collects the journey, route referral and signed-in user
func scopeOf(c *gin.Context) (requestScope, error) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return requestScope{}, errNoSession
	}
	return requestScope{
		journey:    presenter.JourneyForPath(c.Request.URL.Path),
		referralID: c.Param("referralId"),
		username:   middleware.GetJWTUsername(c),
		userToken:  middleware.GetUserToken(c),
		session:    sess,
	}, nil
}

// layout builds the common page frame
func (s requestScope) layout(title, backLink string, errs presenter.FieldErrors) views.Layout {
	return views.Layout{
		PageTitle:   title,
		BackLinkURL: backLink,
		Username:    s.username,
		Errors:      errs,
	}
}

// fieldErrors reads the one-shot error flash of each field
func (s requestScope) fieldErrors(fields ...string) presenter.FieldErrors {
	return presenter.NewFieldErrors(s.session.FirstFlash, fields...)
}

// Render renders a full page with 200
func (h *BaseHandler) Render(c *gin.Context, page string, data any) {
	c.HTML(http.StatusOK, page, data)
}

// Redirect sends a 302 to location
func (h *BaseHandler) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// RejectField flashes message against field and sends the user back to location
func (h *BaseHandler) RejectField(c *gin.Context, s requestScope, field, message, location string) {
	s.session.AddFlash(presenter.FlashKey(field), message)
	h.Redirect(c, location)
}

// HandleError hands err to the error page middleware
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	logger.GetGinLogger(c).Debug("Handler failed", zap.Error(err))
	_ = c.Error(err)
}
