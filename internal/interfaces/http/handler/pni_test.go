package handler

import (
	"net/http"
	"testing"

	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/domain/shared"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPniEnv(t *testing.T) (*testEnv, *MockReferralService, *MockPersonService, *MockPniService) {
	t.Helper()
	referrals := new(MockReferralService)
	people := new(MockPersonService)
	pniService := new(MockPniService)
	h := NewPniHandler(referrals, people, pniService)

	env := newTestEnv(t)
	env.mount(http.MethodGet, "/programme-needs-identifier", h.Show)

	referrals.On("GetReferral", mock.Anything, testUsername, testReferral, referralapp.GetReferralOptions{}).Return(testReferralRecord(), nil).Maybe()
	people.On("GetPerson", mock.Anything, testUsername, "A1234AA").Return(&person.Person{Name: "Del Hatton"}, nil).Maybe()
	return env, referrals, people, pniService
}

func TestPniHandler_Show(t *testing.T) {
	t.Run("renders pathway and domains", func(t *testing.T) {
		env, _, _, pniService := newPniEnv(t)
		pathway := pni.PathwayHighIntensity
		result := &pni.Pni{PrisonNumber: "A1234AA", ProgrammePathway: &pathway, NeedsScore: &pni.NeedsScore{}}
		pniService.On("GetPni", mock.Anything, testUsername, "A1234AA").Return(result, nil)

		w := env.get("/assess/referrals/R1/programme-needs-identifier")
		require.Equal(t, http.StatusOK, w.Code)

		page := env.lastPage()
		require.Equal(t, views.PagePni, page.name)
		data := page.data.(views.PniPage)
		assert.Equal(t, "High intensity", data.Pathway.Heading)
		assert.Contains(t, data.Pathway.BodyText, "Del Hatton")
		assert.True(t, data.HasScores)
		assert.Len(t, data.Domains, 4)
	})

	t.Run("scores unavailable renders missing information", func(t *testing.T) {
		env, _, _, pniService := newPniEnv(t)
		pniService.On("GetPni", mock.Anything, testUsername, "A1234AA").Return(nil, shared.ErrUpstream)

		w := env.get("/refer/referrals/R1/programme-needs-identifier")
		require.Equal(t, http.StatusOK, w.Code)

		data := env.lastPage().data.(views.PniPage)
		assert.Equal(t, "missing-information-pathway", data.Pathway.TestID)
		assert.False(t, data.HasScores)
		require.Len(t, data.Domains, 4)
		rows := data.Domains[0].Rows
		assert.Equal(t, "Missing information", rows[len(rows)-1].Value)
	})

	t.Run("person lookup failure fails the page", func(t *testing.T) {
		referrals := new(MockReferralService)
		people := new(MockPersonService)
		pniService := new(MockPniService)
		h := NewPniHandler(referrals, people, pniService)
		env := newTestEnv(t)
		env.mount(http.MethodGet, "/programme-needs-identifier", h.Show)

		referrals.On("GetReferral", mock.Anything, testUsername, testReferral, referralapp.GetReferralOptions{}).Return(testReferralRecord(), nil)
		people.On("GetPerson", mock.Anything, testUsername, "A1234AA").Return(nil, shared.ErrNotFound)
		pniService.On("GetPni", mock.Anything, testUsername, "A1234AA").Return(nil, shared.ErrNotFound).Maybe()

		w := env.get("/refer/referrals/R1/programme-needs-identifier")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
