package referral

import (
	"context"

	"github.com/acp/web/internal/domain/referral"
)

// ReferenceDataAPI is the subset of the programmes API serving status reference data
type ReferenceDataAPI interface {
	FindReferralStatusCodeCategories(ctx context.Context, token string, status referral.StatusCode) ([]referral.StatusCategory, error)
	FindReferralStatusCodeReasons(ctx context.Context, token, categoryCode string, status referral.StatusCode) ([]referral.StatusReason, error)
}

// ReferenceDataService lists status categories and reasons
type ReferenceDataService struct {
	tokens SystemTokenProvider
	api    ReferenceDataAPI
}

// NewReferenceDataService creates a new ReferenceDataService
func NewReferenceDataService(tokens SystemTokenProvider, api ReferenceDataAPI) *ReferenceDataService {
	return &ReferenceDataService{tokens: tokens, api: api}
}

// GetReferralStatusCodeCategories lists the categories for a decision
func (s *ReferenceDataService) GetReferralStatusCodeCategories(ctx context.Context, username string, decision referral.StatusCode) ([]referral.StatusCategory, error) {
	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.api.FindReferralStatusCodeCategories(ctx, token, decision)
}

// GetReferralStatusCodeReasons lists the reasons within a category
func (s *ReferenceDataService) GetReferralStatusCodeReasons(ctx context.Context, username, categoryCode string, decision referral.StatusCode) ([]referral.StatusReason, error) {
	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.api.FindReferralStatusCodeReasons(ctx, token, categoryCode, decision)
}
