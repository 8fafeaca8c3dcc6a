package pni

import (
	"context"
	"testing"

	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/domain/shared"
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

type MockPniAPI struct {
	mock.Mock
}

func (m *MockPniAPI) FindPni(ctx context.Context, token, prisonNumber string) (*pni.Pni, error) {
	args := m.Called(ctx, token, prisonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pni.Pni), args.Error(1)
}

func TestPniService_GetPni(t *testing.T) {
	tokens := new(MockTokenProvider)
	api := new(MockPniAPI)
	svc := NewPniService(tokens, api)

	tokens.On("GetSystemClientToken", mock.Anything, "BOB").Return("sys", nil)
	api.On("FindPni", mock.Anything, "sys", "A1234AA").Return(&pni.Pni{PrisonNumber: "A1234AA"}, nil)

	result, err := svc.GetPni(context.Background(), "BOB", "A1234AA")
	require.NoError(t, err)
	assert.Equal(t, "A1234AA", result.PrisonNumber)
}

func TestPniService_GetPni_Error(t *testing.T) {
	tokens := new(MockTokenProvider)
	api := new(MockPniAPI)
	svc := NewPniService(tokens, api)

	tokens.On("GetSystemClientToken", mock.Anything, "BOB").Return("sys", nil)
	api.On("FindPni", mock.Anything, "sys", "A1234AA").Return(nil, shared.ErrUpstream)

	result, err := svc.GetPni(context.Background(), "BOB", "A1234AA")
	assert.Error(t, err)
	assert.Nil(t, result)
}
