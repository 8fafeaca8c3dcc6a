// Package referral holds the application services that read and change
// referrals through the accredited programmes API.
package referral

import (
	"context"

	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/telemetry"
)

// SystemTokenProvider issues system tokens scoped to a user
type SystemTokenProvider interface {
	GetSystemClientToken(ctx context.Context, username string) (string, error)
}

// ReferralAPI is the subset of the programmes API used for referrals
type ReferralAPI interface {
	FindReferral(ctx context.Context, token, referralID string, updatePerson bool) (*referral.Referral, error)
	FindReferralStatusHistory(ctx context.Context, token, referralID string) ([]referral.StatusHistoryEntry, error)
	FindStatusTransitions(ctx context.Context, token, referralID string, opts referral.TransitionOptions) ([]referral.StatusTransition, error)
	UpdateReferralStatus(ctx context.Context, token, referralID string, update referral.StatusUpdate) error
}

// UserNameResolver turns usernames into display names
type UserNameResolver interface {
	GetFullNameFromUsername(ctx context.Context, userToken, username string) string
}

// GetReferralOptions tunes GetReferral
type GetReferralOptions struct {
	// UpdatePerson asks the API to refresh the person's details before returning
	UpdatePerson bool
}

// ReferralService reads and updates referrals using system tokens
type ReferralService struct {
	tokens SystemTokenProvider
	api    ReferralAPI
	users  UserNameResolver
}

// NewReferralService creates a new ReferralService
func NewReferralService(tokens SystemTokenProvider, api ReferralAPI, users UserNameResolver) *ReferralService {
	return &ReferralService{tokens: tokens, api: api, users: users}
}

// GetReferral returns one referral
func (s *ReferralService) GetReferral(ctx context.Context, username, referralID string, opts GetReferralOptions) (*referral.Referral, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "referral", "get_referral")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrReferralID, referralID)

	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	ref, err := s.api.FindReferral(ctx, token, referralID, opts.UpdatePerson)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ref, nil
}

// GetReferralStatusHistory returns the referral's history, newest first, with
// each entry's by-line resolved. Entries made by username read "You".
func (s *ReferralService) GetReferralStatusHistory(ctx context.Context, userToken, username, referralID string) ([]referral.StatusHistoryEntry, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "referral", "get_status_history")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrReferralID, referralID)

	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	history, err := s.api.FindReferralStatusHistory(ctx, token, referralID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	names := make(map[string]string)
	for i := range history {
		entry := &history[i]
		if entry.Username == username {
			entry.ByLineText = "You"
			continue
		}
		name, ok := names[entry.Username]
		if !ok {
			name = s.users.GetFullNameFromUsername(ctx, userToken, entry.Username)
			names[entry.Username] = name
		}
		entry.ByLineText = name
	}
	return history, nil
}

// GetStatusTransitions returns the statuses the referral may move to
func (s *ReferralService) GetStatusTransitions(ctx context.Context, username, referralID string, opts referral.TransitionOptions) ([]referral.StatusTransition, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "referral", "get_status_transitions")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrReferralID, referralID)

	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	transitions, err := s.api.FindStatusTransitions(ctx, token, referralID, opts)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return transitions, nil
}

// UpdateReferralStatus submits a status change upstream
func (s *ReferralService) UpdateReferralStatus(ctx context.Context, username, referralID string, update referral.StatusUpdate) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "referral", "update_status")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrReferralID, referralID,
		telemetry.SpanAttrStatus, string(update.Status),
		telemetry.SpanAttrCategoryCode, update.Category,
	)

	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.api.UpdateReferralStatus(ctx, token, referralID, update); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	telemetry.AddEvent(span, "referral_status_updated", telemetry.SpanAttrStatus, string(update.Status))
	return nil
}
