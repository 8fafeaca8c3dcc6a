// Package pni serves programme needs identifier scores.
package pni

import (
	"context"

	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/infrastructure/telemetry"
)

// SystemTokenProvider issues system tokens scoped to a user
type SystemTokenProvider interface {
	GetSystemClientToken(ctx context.Context, username string) (string, error)
}

// PniAPI is the subset of the programmes API serving PNI scores
type PniAPI interface {
	FindPni(ctx context.Context, token, prisonNumber string) (*pni.Pni, error)
}

// PniService reads PNI scores
type PniService struct {
	tokens SystemTokenProvider
	api    PniAPI
}

// NewPniService creates a new PniService
func NewPniService(tokens SystemTokenProvider, api PniAPI) *PniService {
	return &PniService{tokens: tokens, api: api}
}

// GetPni returns the PNI scores for a person
func (s *PniService) GetPni(ctx context.Context, username, prisonNumber string) (*pni.Pni, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "pni", "get_pni")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrPrisonNumber, prisonNumber)

	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result, err := s.api.FindPni(ctx, token, prisonNumber)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return result, nil
}
