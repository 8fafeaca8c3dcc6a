// Package middleware provides the HTTP middleware of the referral web app.
package middleware

import (
	"net/http"

	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength bounds client-supplied request IDs
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig starts an otelgin server span per request
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnricher tags the active span with the request ID, journey, referral
// and user. 5xx responses mark the span as failed. It must run inside the
// otelgin span.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		span.SetAttributes(
			attribute.String("request_id", c.GetString(RequestIDKey)),
			attribute.String("journey", presenter.JourneyForPath(c.Request.URL.Path).Name),
		)
		if referralID := c.Param("referralId"); referralID != "" {
			span.SetAttributes(attribute.String("referral_id", referralID))
		}

		c.Next()

		if username := GetJWTUsername(c); username != "" {
			span.SetAttributes(attribute.String("username", username))
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last().Err)
		}
	}
}
