package handler

import (
	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"github.com/acp/web/internal/interfaces/http/middleware"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
)

// Form field names
const (
	fieldDecision     = "decision"
	fieldCategoryCode = "categoryCode"
	fieldReasonCode   = "reasonCode"
	fieldNotes        = "notes"
)

// Status update steps as reported in metrics
const (
	stepDecision = "decision"
	stepCategory = "category"
	stepReason   = "reason"
	stepConfirm  = "confirm"
)

// UpdateStatusHandler starts a status update, either from the decision page
// or from the withdraw shortcut
type UpdateStatusHandler struct {
	BaseHandler
	referrals ReferralService
	metrics   *telemetry.WorkflowMetrics
}

// NewUpdateStatusHandler creates a new UpdateStatusHandler. metrics may be nil.
func NewUpdateStatusHandler(referrals ReferralService, metrics *telemetry.WorkflowMetrics) *UpdateStatusHandler {
	return &UpdateStatusHandler{
		referrals: referrals,
		metrics:   metrics,
	}
}

// DecisionForm is the decision page submission
type DecisionForm struct {
	Decision string `form:"decision" binding:"required"`
}

// Show renders GET <journey>/referrals/:referralId/update-status
func (h *UpdateStatusHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	s.session.ClearStatusUpdate()

	ref, transitions, err := fetchReferralAndTransitions(c.Request.Context(), h.referrals, s)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Render(c, views.PageUpdateStatus, views.UpdateStatusPage{
		Layout:         s.layout("Update status", s.journey.StatusHistoryPath(s.referralID), s.fieldErrors(fieldDecision)),
		ReferralHeader: referralHeader(ref, nil, nil),
		Action:         s.journey.UpdateStatusPath(s.referralID),
		RadioItems:     presenter.StatusTransitionRadioItems(transitions, ""),
	})
}

// Submit handles POST <journey>/referrals/:referralId/update-status
func (h *UpdateStatusHandler) Submit(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	ctx := c.Request.Context()

	var form DecisionForm
	if err := c.ShouldBind(&form); err != nil {
		if !violatesRule(err, fieldDecision) {
			h.HandleError(c, err)
			return
		}
		h.metrics.ValidationFailed(ctx, fieldDecision)
		h.RejectField(c, s, fieldDecision, presenter.DecisionRequiredMessage, s.journey.UpdateStatusPath(s.referralID))
		return
	}

	ref, err := h.referrals.GetReferral(ctx, s.username, s.referralID, referralapp.GetReferralOptions{})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	decision, err := referral.ParseDecision(form.Decision, ref.Status)
	if err != nil {
		h.metrics.ValidationFailed(ctx, fieldDecision)
		h.RejectField(c, s, fieldDecision, presenter.DecisionRequiredMessage, s.journey.UpdateStatusPath(s.referralID))
		return
	}

	if !h.start(c, s, decision) {
		return
	}
	h.metrics.StepCompleted(ctx, s.journey.Name, stepDecision)

	if decision.DecisionForCategoryAndReason.RequiresCategory() {
		h.Redirect(c, s.journey.CategoryPath(s.referralID))
		return
	}
	h.Redirect(c, s.journey.ConfirmPath(s.referralID))
}

// Withdraw handles GET <journey>/referrals/:referralId/withdraw
func (h *UpdateStatusHandler) Withdraw(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	decision, err := referral.ParseDecision(string(referral.StatusWithdrawn), "")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.start(c, s, decision) {
		return
	}
	h.Redirect(c, s.journey.CategoryPath(s.referralID))
}

// start replaces any update in progress with a fresh one for decision
func (h *UpdateStatusHandler) start(c *gin.Context, s requestScope, decision referral.Decision) bool {
	data, err := referral.NewStatusUpdateSessionData(s.referralID, decision)
	if err != nil {
		h.HandleError(c, err)
		return false
	}
	s.session.SetStatusUpdate(data)
	return true
}

// violatesRule reports whether err failed binding on field
func violatesRule(err error, field string) bool {
	return middleware.HasViolation(middleware.FieldViolations(err), field)
}
