package handler

import (
	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// CategoryHandler is the category step of a deselection or withdrawal
type CategoryHandler struct {
	BaseHandler
	referrals     ReferralService
	referenceData ReferenceDataService
	metrics       *telemetry.WorkflowMetrics
}

// NewCategoryHandler creates a new CategoryHandler. metrics may be nil.
func NewCategoryHandler(referrals ReferralService, referenceData ReferenceDataService, metrics *telemetry.WorkflowMetrics) *CategoryHandler {
	return &CategoryHandler{
		referrals:     referrals,
		referenceData: referenceData,
		metrics:       metrics,
	}
}

// CategoryForm is the category step submission
type CategoryForm struct {
	CategoryCode string `form:"categoryCode" binding:"required"`
}

// categoryStep returns the update in progress for this referral when it is
// on a branch with category content
func categoryStep(s requestScope) (*referral.StatusUpdateSessionData, presenter.DecisionContent, bool) {
	data := s.session.StatusUpdate()
	if !data.BelongsTo(s.referralID) || !data.HasDecision() {
		return nil, presenter.DecisionContent{}, false
	}
	content, ok := presenter.CategoryContent(data.DecisionForCategoryAndReason)
	if !ok {
		return nil, presenter.DecisionContent{}, false
	}
	return data, content, true
}

// Show renders GET <journey>/referrals/:referralId/update-status/category
func (h *CategoryHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, content, ok := categoryStep(s)
	if !ok {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}

	var (
		history    []referral.StatusHistoryEntry
		categories []referral.StatusCategory
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		history, err = h.referrals.GetReferralStatusHistory(ctx, s.userToken, s.username, s.referralID)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.referenceData.GetReferralStatusCodeCategories(ctx, s.username, data.DecisionForCategoryAndReason)
		return err
	})
	if err := g.Wait(); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Render(c, views.PageCategory, views.CategoryPage{
		Layout:        s.layout(content.PageHeading, categoryBackLink(s), s.fieldErrors(fieldCategoryCode)),
		Action:        s.journey.CategoryPath(s.referralID),
		Content:       content,
		RadioItems:    presenter.CategoryRadioItems(categories, data.StatusCategoryCode),
		TimelineItems: presenter.LatestTimelineItem(history),
	})
}

// Submit handles POST <journey>/referrals/:referralId/update-status/category
func (h *CategoryHandler) Submit(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data := s.session.StatusUpdate()
	if !data.BelongsTo(s.referralID) || !data.HasDecision() {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}
	ctx := c.Request.Context()

	var form CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		if !violatesRule(err, fieldCategoryCode) {
			h.HandleError(c, err)
			return
		}
		h.metrics.ValidationFailed(ctx, fieldCategoryCode)
		h.RejectField(c, s, fieldCategoryCode,
			presenter.CategoryRequiredMessage(data.DecisionForCategoryAndReason),
			s.journey.CategoryPath(s.referralID))
		return
	}

	data.SelectCategory(form.CategoryCode)
	s.session.SetStatusUpdate(data)
	h.metrics.StepCompleted(ctx, s.journey.Name, stepCategory)

	h.Redirect(c, s.journey.ReasonPath(s.referralID))
}

// categoryBackLink returns where the user came from: the decision page for
// programme teams, the status history for referrers who used withdraw
func categoryBackLink(s requestScope) string {
	if s.journey.IsAssess() {
		return s.journey.UpdateStatusPath(s.referralID)
	}
	return s.journey.StatusHistoryPath(s.referralID)
}
