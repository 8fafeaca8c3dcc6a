package client

import (
	"context"
	"net/url"
)

// Prisoner is the prisoner search API's view of a person
type Prisoner struct {
	PrisonerNumber      string `json:"prisonerNumber"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	DateOfBirth         string `json:"dateOfBirth,omitempty"`
	Ethnicity           string `json:"ethnicity,omitempty"`
	Gender              string `json:"gender,omitempty"`
	Religion            string `json:"religion,omitempty"`
	PrisonName          string `json:"prisonName,omitempty"`
	LegalStatus         string `json:"legalStatus,omitempty"`
	ReleaseDate         string `json:"releaseDate,omitempty"`
	ConditionalRelease  string `json:"conditionalReleaseDate,omitempty"`
	ParoleEligibility   string `json:"paroleEligibilityDate,omitempty"`
	TariffDate          string `json:"tariffDate,omitempty"`
	IndeterminateSentnc bool   `json:"indeterminateSentence,omitempty"`
}

// PrisonerSearchClient looks people up by prison number
type PrisonerSearchClient struct {
	rest *RestClient
}

// NewPrisonerSearchClient creates a client over rest
func NewPrisonerSearchClient(rest *RestClient) *PrisonerSearchClient {
	return &PrisonerSearchClient{rest: rest}
}

// FindPrisoner returns the prisoner with prisonNumber
func (c *PrisonerSearchClient) FindPrisoner(ctx context.Context, token, prisonNumber string) (*Prisoner, error) {
	var out Prisoner
	if err := c.rest.Get(ctx, token, "/prisoner/"+url.PathEscape(prisonNumber), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
