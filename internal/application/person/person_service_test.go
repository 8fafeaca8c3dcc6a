package person

import (
	"context"
	"testing"
	"time"

	"github.com/acp/web/internal/infrastructure/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) GetSystemClientToken(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

type MockPrisonerSearchAPI struct {
	mock.Mock
}

func (m *MockPrisonerSearchAPI) FindPrisoner(ctx context.Context, token, prisonNumber string) (*client.Prisoner, error) {
	args := m.Called(ctx, token, prisonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Prisoner), args.Error(1)
}

func TestPersonService_GetPerson(t *testing.T) {
	tokens := new(MockTokenProvider)
	api := new(MockPrisonerSearchAPI)
	svc := NewPersonService(tokens, api)

	tokens.On("GetSystemClientToken", mock.Anything, "BOB").Return("sys", nil)
	api.On("FindPrisoner", mock.Anything, "sys", "A1234AA").Return(&client.Prisoner{
		PrisonerNumber:     "A1234AA",
		FirstName:          "DEL",
		LastName:           "HATTON",
		DateOfBirth:        "1980-01-01",
		PrisonName:         "HMP Whatton",
		LegalStatus:        "SENTENCED",
		ReleaseDate:        "2030-06-01",
		ConditionalRelease: "2029-01-15",
	}, nil)

	p, err := svc.GetPerson(context.Background(), "BOB", "A1234AA")
	require.NoError(t, err)
	assert.Equal(t, "Del Hatton", p.Name)
	assert.Equal(t, "A1234AA", p.PrisonNumber)
	assert.Equal(t, "Custody", p.Setting)
	assert.Equal(t, "Determinate", p.SentenceType)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, 1980, p.DateOfBirth.Year())
	require.NotNil(t, p.EarliestReleaseDate)
	assert.Equal(t, time.Date(2029, 1, 15, 0, 0, 0, 0, time.UTC), *p.EarliestReleaseDate)
}

func TestPrisonerToPerson_Indeterminate(t *testing.T) {
	p := PrisonerToPerson(&client.Prisoner{
		FirstName:           "ann",
		LastName:            "SMITH",
		IndeterminateSentnc: true,
		TariffDate:          "2031-01-01",
		ParoleEligibility:   "2030-01-01",
		DateOfBirth:         "not-a-date",
	})

	assert.Equal(t, "Ann Smith", p.Name)
	assert.Equal(t, "Indeterminate", p.SentenceType)
	assert.Nil(t, p.DateOfBirth)
	require.NotNil(t, p.EarliestReleaseDate)
	assert.Equal(t, 2030, p.EarliestReleaseDate.Year())
}
