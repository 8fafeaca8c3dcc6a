package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acp/web/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForError(shared.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, StatusForError(fmt.Errorf("wrapped: %w", shared.ErrNotFound)))
	assert.Equal(t, http.StatusForbidden, StatusForError(shared.ErrForbidden))
	assert.Equal(t, http.StatusUnauthorized, StatusForError(shared.ErrUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(shared.ErrUpstream))
	assert.Equal(t, http.StatusInternalServerError, StatusForError(errors.New("boom")))
}

func TestErrorPages(t *testing.T) {
	r := newTestEngine()
	r.Use(ErrorPages())
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(shared.ErrNotFound) })
	r.GET("/broken", func(c *gin.Context) { _ = c.Error(errors.New("upstream down")) })
	r.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("already handled"))
		c.String(http.StatusOK, "fine")
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Page not found")
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Sorry, there is a problem with the service")
		assert.NotContains(t, w.Body.String(), "upstream down")
	})

	t.Run("written response is kept", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handled", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fine", w.Body.String())
	})
}
