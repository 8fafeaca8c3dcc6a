package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/interfaces/http/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReasonEnv(t *testing.T) (*testEnv, *MockReferralService, *MockReferenceDataService) {
	t.Helper()
	referrals := new(MockReferralService)
	referenceData := new(MockReferenceDataService)
	h := NewReasonHandler(referrals, referenceData, nil)

	env := newTestEnv(t)
	env.mount(http.MethodGet, "/update-status/reason", h.Show)
	env.mount(http.MethodPost, "/update-status/reason", h.Submit)
	return env, referrals, referenceData
}

func withdrawalWithCategory() referral.StatusUpdateSessionData {
	data := withdrawalInProgress()
	data.StatusCategoryCode = "ADMIN"
	return data
}

func TestReasonHandler_Show(t *testing.T) {
	t.Run("requires a category", func(t *testing.T) {
		env, _, _ := newReasonEnv(t)
		env.startUpdate(withdrawalInProgress())

		w := env.get("/refer/referrals/R1/update-status/reason")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/refer/referrals/R1/status-history", w.Header().Get("Location"))
	})

	t.Run("renders reasons for the category", func(t *testing.T) {
		env, referrals, referenceData := newReasonEnv(t)
		data := withdrawalWithCategory()
		data.StatusReasonCode = "DUP"
		env.startUpdate(data)

		referrals.On("GetReferralStatusHistory", mock.Anything, testUserToken, testUsername, testReferral).Return(testHistory(), nil)
		referenceData.On("GetReferralStatusCodeReasons", mock.Anything, testUsername, "ADMIN", referral.StatusWithdrawn).Return([]referral.StatusReason{
			{Code: "DUP", Description: "Duplicate referral"},
			{Code: "WRONG", Description: "Wrong person"},
		}, nil)

		w := env.get("/assess/referrals/R1/update-status/reason")
		require.Equal(t, http.StatusOK, w.Code)

		page := env.lastPage()
		require.Equal(t, views.PageReason, page.name)
		data2 := page.data.(views.ReasonPage)
		assert.Equal(t, "Withdrawal reason", data2.Content.PageHeading)
		assert.Equal(t, "/assess/referrals/R1/update-status/category", data2.BackLinkURL)
		assert.Equal(t, "/assess/referrals/R1/update-status/reason", data2.Action)
		require.Len(t, data2.RadioItems, 2)
		assert.True(t, data2.RadioItems[0].Checked)
		assert.Len(t, data2.TimelineItems, 1)
		referenceData.AssertExpectations(t)
	})
}

func TestReasonHandler_Submit(t *testing.T) {
	t.Run("missing reason", func(t *testing.T) {
		env, _, _ := newReasonEnv(t)
		env.startUpdate(withdrawalWithCategory())

		w := env.post("/refer/referrals/R1/update-status/reason", url.Values{})

		assert.Equal(t, "/refer/referrals/R1/update-status/reason", w.Header().Get("Location"))
		assert.Equal(t, "Select a withdrawal reason", env.session.FirstFlash("reasonCodeError"))
		assert.Empty(t, env.session.StatusUpdate().StatusReasonCode)
	})

	t.Run("stores the reason and moves to confirm", func(t *testing.T) {
		env, _, _ := newReasonEnv(t)
		env.startUpdate(withdrawalWithCategory())

		w := env.post("/refer/referrals/R1/update-status/reason", url.Values{"reasonCode": {"DUP"}})

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/refer/referrals/R1/update-status/confirm", w.Header().Get("Location"))
		assert.Equal(t, "DUP", env.session.StatusUpdate().StatusReasonCode)
		assert.Equal(t, "ADMIN", env.session.StatusUpdate().StatusCategoryCode)
	})
}
