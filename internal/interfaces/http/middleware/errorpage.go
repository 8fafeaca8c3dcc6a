package middleware

import (
	"errors"
	"net/http"

	"github.com/acp/web/internal/domain/shared"
	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusForError maps an error onto the HTTP status of the page shown for it
func StatusForError(err error) int {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr.Code {
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeForbidden:
		return http.StatusForbidden
	case shared.CodeUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// RenderErrorPage renders the error page with status and aborts the chain
func RenderErrorPage(c *gin.Context, status int) {
	heading, message := errorCopy(status)
	c.HTML(status, views.PageError, views.ErrorPageData{
		Layout:  views.Layout{PageTitle: heading, Username: GetJWTUsername(c)},
		Status:  status,
		Heading: heading,
		Message: message,
	})
	c.Abort()
}

func errorCopy(status int) (string, string) {
	switch status {
	case http.StatusNotFound:
		return "Page not found", "If you typed the web address, check it is correct."
	case http.StatusUnauthorized:
		return "You need to sign in", "Sign in again to continue."
	case http.StatusForbidden:
		return "You do not have permission to view this page", "Contact your local administrator if you need access."
	}
	return "Sorry, there is a problem with the service", "Try again later."
}

// ErrorPages renders the error page for the last error a handler attached
// with c.Error, unless the handler already wrote a response
func ErrorPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusForError(err)
		log := logger.GetGinLogger(c)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", zap.Error(err))
		} else {
			log.Info("Request failed", zap.Int("status", status), zap.Error(err))
		}
		RenderErrorPage(c, status)
	}
}
