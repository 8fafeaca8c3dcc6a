package handler

import (
	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/infrastructure/logger"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PniHandler shows the programme needs identifier for a referred person
type PniHandler struct {
	BaseHandler
	referrals ReferralService
	people    PersonService
	pni       PniService
}

// NewPniHandler creates a new PniHandler
func NewPniHandler(referrals ReferralService, people PersonService, pniService PniService) *PniHandler {
	return &PniHandler{
		referrals: referrals,
		people:    people,
		pni:       pniService,
	}
}

// Show renders GET <journey>/referrals/:referralId/programme-needs-identifier.
// Scores that cannot be fetched are shown as missing rather than failing the page.
func (h *PniHandler) Show(c *gin.Context) {
	s, err := scopeOf(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ref, err := h.referrals.GetReferral(c.Request.Context(), s.username, s.referralID, referralapp.GetReferralOptions{})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	log := logger.GetGinLogger(c)
	var (
		pers   *person.Person
		scores *pni.Pni
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		pers, err = h.people.GetPerson(ctx, s.username, ref.PrisonNumber)
		return err
	})
	g.Go(func() error {
		result, err := h.pni.GetPni(ctx, s.username, ref.PrisonNumber)
		if err != nil {
			log.Warn("Programme needs identifier unavailable",
				zap.String("referral_id", s.referralID),
				zap.Error(err),
			)
			return nil
		}
		scores = result
		return nil
	})
	if err := g.Wait(); err != nil {
		h.HandleError(c, err)
		return
	}

	var pathway *pni.Pathway
	if scores != nil {
		pathway = scores.ProgrammePathway
	}

	h.Render(c, views.PagePni, views.PniPage{
		Layout:         s.layout("Programme needs identifier", s.journey.StatusHistoryPath(s.referralID), presenter.FieldErrors{}),
		ReferralHeader: referralHeader(ref, nil, pers),
		Pathway:        presenter.PathwayContent(pers.Name, pathway),
		Domains:        presenter.PniDomainSections(scores),
		HasScores:      scores != nil && scores.NeedsScore != nil,
	})
}
