package handler

import (
	"strings"

	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/infrastructure/telemetry"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConfirmHandler is the last step. Submitting it sends the update upstream.
type ConfirmHandler struct {
	BaseHandler
	referrals     ReferralService
	referenceData ReferenceDataService
	metrics       *telemetry.WorkflowMetrics
}

// NewConfirmHandler creates a new ConfirmHandler. metrics may be nil.
func NewConfirmHandler(referrals ReferralService, referenceData ReferenceDataService, metrics *telemetry.WorkflowMetrics) *ConfirmHandler {
	return &ConfirmHandler{
		referrals:     referrals,
		referenceData: referenceData,
		metrics:       metrics,
	}
}

// ConfirmForm is the confirm step submission
type ConfirmForm struct {
	Notes string `form:"notes" binding:"max=500"`
}

func confirmStep(s requestScope) (*referral.StatusUpdateSessionData, bool) {
	data := s.session.StatusUpdate()
	if !data.BelongsTo(s.referralID) || !data.ReadyToSubmit() {
		return nil, false
	}
	return data, true
}

// Show renders GET <journey>/referrals/:referralId/update-status/confirm
func (h *ConfirmHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, ok := confirmStep(s)
	if !ok {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}

	var (
		history     []referral.StatusHistoryEntry
		transitions []referral.StatusTransition
		categories  []referral.StatusCategory
		reasons     []referral.StatusReason
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		history, err = h.referrals.GetReferralStatusHistory(ctx, s.userToken, s.username, s.referralID)
		return err
	})
	g.Go(func() (err error) {
		transitions, err = h.referrals.GetStatusTransitions(ctx, s.username, s.referralID, referral.TransitionOptions{
			PtUser: s.journey.IsAssess(),
		})
		return err
	})
	if data.RequiresCategory() {
		g.Go(func() (err error) {
			categories, err = h.referenceData.GetReferralStatusCodeCategories(ctx, s.username, data.DecisionForCategoryAndReason)
			return err
		})
		g.Go(func() (err error) {
			reasons, err = h.referenceData.GetReferralStatusCodeReasons(ctx, s.username, data.StatusCategoryCode, data.DecisionForCategoryAndReason)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.HandleError(c, err)
		return
	}

	category, _ := referral.FindCategory(categories, data.StatusCategoryCode)
	reason, _ := referral.FindReason(reasons, data.StatusReasonCode)

	h.Render(c, views.PageConfirm, views.ConfirmPage{
		Layout: s.layout("Confirm status update", confirmBackLink(s, data), s.fieldErrors(fieldNotes)),
		Action: s.journey.ConfirmPath(s.referralID),
		SummaryRows: presenter.StatusUpdateSummaryRows(
			presenter.DecisionDescription(data.InitialStatusDecision, transitions),
			category.Description,
			reason.Description,
		),
		TimelineItems: presenter.LatestTimelineItem(history),
		Notes:         s.session.FirstFlash(fieldNotes),
		MaxNotes:      presenter.MaxNotesLength,
	})
}

// Submit handles POST <journey>/referrals/:referralId/update-status/confirm
func (h *ConfirmHandler) Submit(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	data, ok := confirmStep(s)
	if !ok {
		h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
		return
	}
	ctx := c.Request.Context()

	var form ConfirmForm
	if err := c.ShouldBind(&form); err != nil {
		if !violatesRule(err, fieldNotes) {
			h.HandleError(c, err)
			return
		}
		h.metrics.ValidationFailed(ctx, fieldNotes)
		s.session.AddFlash(fieldNotes, form.Notes)
		h.RejectField(c, s, fieldNotes, presenter.NotesTooLongMessage, s.journey.ConfirmPath(s.referralID))
		return
	}

	update := data.ToStatusUpdate(strings.TrimSpace(form.Notes), s.journey.IsAssess())
	if err := h.referrals.UpdateReferralStatus(ctx, s.username, s.referralID, update); err != nil {
		h.HandleError(c, err)
		return
	}

	s.session.ClearStatusUpdate()
	h.metrics.StepCompleted(ctx, s.journey.Name, stepConfirm)
	h.metrics.StatusUpdated(ctx, s.journey.Name, update.Status.String())
	logger.GetGinLogger(c).Info("Referral status updated",
		zap.String("referral_id", s.referralID),
		zap.String("status", update.Status.String()),
		zap.String("journey", s.journey.Name),
	)

	h.Redirect(c, s.journey.StatusHistoryPath(s.referralID))
}

func confirmBackLink(s requestScope, data *referral.StatusUpdateSessionData) string {
	if data.RequiresCategory() {
		return s.journey.ReasonPath(s.referralID)
	}
	return s.journey.UpdateStatusPath(s.referralID)
}
