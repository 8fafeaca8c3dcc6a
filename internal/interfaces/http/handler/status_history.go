package handler

import (
	"context"
	"time"

	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/course"
	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// StatusHistoryHandler shows a referral's status history. It is the start
// and end of every status update, so it drops any update in progress.
type StatusHistoryHandler struct {
	BaseHandler
	referrals ReferralService
	courses   CourseService
	people    PersonService
	now       func() time.Time
}

// NewStatusHistoryHandler creates a new StatusHistoryHandler
func NewStatusHistoryHandler(referrals ReferralService, courses CourseService, people PersonService) *StatusHistoryHandler {
	return &StatusHistoryHandler{
		referrals: referrals,
		courses:   courses,
		people:    people,
		now:       time.Now,
	}
}

// Show renders GET <journey>/referrals/:referralId/status-history
func (h *StatusHistoryHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	s.session.ClearStatusUpdate()

	ref, err := h.referrals.GetReferral(c.Request.Context(), s.username, s.referralID, referralapp.GetReferralOptions{
		UpdatePerson: c.Query("updatePerson") == "true",
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var (
		crs         *course.Course
		history     []referral.StatusHistoryEntry
		pers        *person.Person
		transitions []referral.StatusTransition
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		crs, err = h.courses.GetCourseByOffering(ctx, s.username, ref.OfferingID)
		return err
	})
	g.Go(func() (err error) {
		history, err = h.referrals.GetReferralStatusHistory(ctx, s.userToken, s.username, s.referralID)
		return err
	})
	g.Go(func() (err error) {
		pers, err = h.people.GetPerson(ctx, s.username, ref.PrisonNumber)
		return err
	})
	if !s.journey.IsAssess() {
		g.Go(func() (err error) {
			transitions, err = h.referrals.GetStatusTransitions(ctx, s.username, s.referralID, referral.TransitionOptions{})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.HandleError(c, err)
		return
	}

	backLink := s.session.RecentCaseListPath()
	if backLink == "" {
		backLink = s.journey.CaseListPath
	}

	h.Render(c, views.PageStatusHistory, views.StatusHistoryPage{
		Layout:         s.layout("Status history", backLink, presenter.FieldErrors{}),
		ReferralHeader: referralHeader(ref, crs, pers),
		ReferralID:     ref.ID,
		Buttons:        presenter.StatusUpdateButtons(s.journey, ref, transitions),
		TimelineItems:  presenter.StatusHistoryTimelineItems(history),
		PersonRows:     presenter.PersonSummaryRows(pers, h.now()),
		SentenceRows:   presenter.SentenceRows(pers),
		PniHref:        s.journey.PniPath(s.referralID),
	})
}

// referralHeader builds the person and course heading. crs and pers may be nil.
func referralHeader(ref *referral.Referral, crs *course.Course, pers *person.Person) views.ReferralHeader {
	header := views.ReferralHeader{
		PrisonNumber: ref.PrisonNumber,
		Status:       presenter.Tag{Text: ref.StatusDescription, Colour: ref.StatusColour},
	}
	if crs != nil {
		header.Course = presenter.PresentCourse(crs)
	}
	if pers != nil {
		header.PersonName = pers.Name
	}
	return header
}

// fetchReferralAndTransitions loads a referral and its next statuses in parallel
func fetchReferralAndTransitions(ctx context.Context, referrals ReferralService, s requestScope) (*referral.Referral, []referral.StatusTransition, error) {
	var (
		ref         *referral.Referral
		transitions []referral.StatusTransition
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ref, err = referrals.GetReferral(ctx, s.username, s.referralID, referralapp.GetReferralOptions{})
		return err
	})
	g.Go(func() (err error) {
		transitions, err = referrals.GetStatusTransitions(ctx, s.username, s.referralID, referral.TransitionOptions{
			PtUser: s.journey.IsAssess(),
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ref, transitions, nil
}
