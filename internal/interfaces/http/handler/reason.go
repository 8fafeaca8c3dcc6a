package handler

import (
	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// ReasonHandler is the reason step, reached once a category is chosen
type ReasonHandler struct {
	BaseHandler
	referrals     ReferralService
	referenceData ReferenceDataService
	metrics       *telemetry.WorkflowMetrics
}

// NewReasonHandler creates a new ReasonHandler. metrics may be nil.
func NewReasonHandler(referrals ReferralService, referenceData ReferenceDataService, metrics *telemetry.WorkflowMetrics) *ReasonHandler {
	return &ReasonHandler{
		referrals:     referrals,
		referenceData: referenceData,
		metrics:       metrics,
	}
}

// ReasonForm is the reason step submission
type ReasonForm struct {
	ReasonCode string `form:"reasonCode" binding:"required"`
}

func reasonStep(s requestScope) (*referral.StatusUpdateSessionData, presenter.DecisionContent, bool) {
	data := s.session.StatusUpdate()
	if !data.BelongsTo(s.referralID) || !data.HasDecision() || data.StatusCategoryCode == "" {
		return nil, presenter.DecisionContent{}, false
	}
	content, ok := presenter.ReasonContent(data.DecisionForCategoryAndReason)
	if !ok {
		return nil, presenter.DecisionContent{}, false
	}
	return data, content, true
}

// Show renders GET <journey>/referrals/:referralId/update-status/reason
func (h *ReasonHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, content, ok := reasonStep(s)
	if !ok {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}

	var (
		history []referral.StatusHistoryEntry
		reasons []referral.StatusReason
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		history, err = h.referrals.GetReferralStatusHistory(ctx, s.userToken, s.username, s.referralID)
		return err
	})
	g.Go(func() (err error) {
		reasons, err = h.referenceData.GetReferralStatusCodeReasons(ctx, s.username, data.StatusCategoryCode, data.DecisionForCategoryAndReason)
		return err
	})
	if err := g.Wait(); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Render(c, views.PageReason, views.ReasonPage{
		Layout:        s.layout(content.PageHeading, s.journey.CategoryPath(s.referralID), s.fieldErrors(fieldReasonCode)),
		Action:        s.journey.ReasonPath(s.referralID),
		Content:       content,
		RadioItems:    presenter.ReasonRadioItems(reasons, data.StatusReasonCode),
		TimelineItems: presenter.LatestTimelineItem(history),
	})
}

// Submit handles POST <journey>/referrals/:referralId/update-status/reason
func (h *ReasonHandler) Submit(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, _, ok := reasonStep(s)
	if !ok {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}
	ctx := c.Request.Context()

	var form ReasonForm
	if err := c.ShouldBind(&form); err != nil {
		if !violatesRule(err, fieldReasonCode) {
			h.HandleError(c, err)
			return
		}
		h.metrics.ValidationFailed(ctx, fieldReasonCode)
		h.RejectField(c, s, fieldReasonCode,
			presenter.ReasonRequiredMessage(data.DecisionForCategoryAndReason),
			s.journey.ReasonPath(s.referralID))
		return
	}

	data.SelectReason(form.ReasonCode)
	s.session.SetStatusUpdate(data)
	h.metrics.StepCompleted(ctx, s.journey.Name, stepReason)

	h.Redirect(c, s.journey.ConfirmPath(s.referralID))
}
