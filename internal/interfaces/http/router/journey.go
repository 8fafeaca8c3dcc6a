package router

import (
	"github.com/acp/web/internal/interfaces/http/handler"
	"github.com/acp/web/internal/interfaces/http/middleware"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/gin-gonic/gin"
)

// ReferralHandlers are the referral pages mounted under each journey
type ReferralHandlers struct {
	StatusHistory *handler.StatusHistoryHandler
	UpdateStatus  *handler.UpdateStatusHandler
	Category      *handler.CategoryHandler
	Reason        *handler.ReasonHandler
	Confirm       *handler.ConfirmHandler
	Pni           *handler.PniHandler
}

// JourneyConfig holds the middleware wrapped around a journey's pages
type JourneyConfig struct {
	// Auth identifies the user; it runs before the journey's role check
	Auth gin.HandlerFunc
	// After runs once the user is allowed in, e.g. session loading
	After []gin.HandlerFunc
}

// NewJourneyGroup mounts the referral pages under j.Base. Both journeys
// share the same handlers; only the permitted roles differ.
func NewJourneyGroup(j presenter.Journey, h ReferralHandlers, cfg JourneyConfig) *DomainGroup {
	group := NewDomainGroup(j.Name, j.Base)
	if cfg.Auth != nil {
		group.Use(cfg.Auth)
	}
	group.Use(middleware.RequireAnyRole(j.Roles...))
	group.Use(cfg.After...)

	referral := group.Group("referral", "/referrals/:referralId")
	referral.GET("/status-history", h.StatusHistory.Show)
	referral.GET("/programme-needs-identifier", h.Pni.Show)
	referral.GET("/withdraw", h.UpdateStatus.Withdraw)

	updateStatus := referral.Group("update-status", "/update-status")
	updateStatus.GET("", h.UpdateStatus.Show)
	updateStatus.POST("", h.UpdateStatus.Submit)
	updateStatus.GET("/category", h.Category.Show)
	updateStatus.POST("/category", h.Category.Submit)
	updateStatus.GET("/reason", h.Reason.Show)
	updateStatus.POST("/reason", h.Reason.Submit)
	updateStatus.GET("/confirm", h.Confirm.Show)
	updateStatus.POST("/confirm", h.Confirm.Submit)

	return group
}
