package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/acp/web/internal/domain/course"
	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/domain/referral"
)

// ProgrammesClient calls the accredited programmes API, which owns
// referrals, courses, reference data and PNI scores
type ProgrammesClient struct {
	rest *RestClient
}

// NewProgrammesClient creates a client over rest
func NewProgrammesClient(rest *RestClient) *ProgrammesClient {
	return &ProgrammesClient{rest: rest}
}

// FindReferral fetches one referral. updatePerson asks the API to refresh
// its copy of the person's details first.
func (c *ProgrammesClient) FindReferral(ctx context.Context, token, referralID string, updatePerson bool) (*referral.Referral, error) {
	var query url.Values
	if updatePerson {
		query = url.Values{"updatePerson": {"true"}}
	}

	var out referral.Referral
	if err := c.rest.Get(ctx, token, "/referrals/"+url.PathEscape(referralID), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindReferralStatusHistory returns status history entries, newest first
func (c *ProgrammesClient) FindReferralStatusHistory(ctx context.Context, token, referralID string) ([]referral.StatusHistoryEntry, error) {
	var out []referral.StatusHistoryEntry
	if err := c.rest.Get(ctx, token, "/referrals/"+url.PathEscape(referralID)+"/status-history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindStatusTransitions returns the statuses the referral may move to
func (c *ProgrammesClient) FindStatusTransitions(ctx context.Context, token, referralID string, opts referral.TransitionOptions) ([]referral.StatusTransition, error) {
	query := url.Values{
		"ptUser":              {strconv.FormatBool(opts.PtUser)},
		"deselectAndKeepOpen": {strconv.FormatBool(opts.DeselectAndKeepOpen)},
	}

	var out []referral.StatusTransition
	if err := c.rest.Get(ctx, token, "/referrals/"+url.PathEscape(referralID)+"/status-transitions", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReferralStatus submits a status change
func (c *ProgrammesClient) UpdateReferralStatus(ctx context.Context, token, referralID string, update referral.StatusUpdate) error {
	return c.rest.Put(ctx, token, "/referrals/"+url.PathEscape(referralID)+"/status", update, nil)
}

// FindCourseByOffering returns the course an offering belongs to
func (c *ProgrammesClient) FindCourseByOffering(ctx context.Context, token, offeringID string) (*course.Course, error) {
	var out course.Course
	if err := c.rest.Get(ctx, token, "/offerings/"+url.PathEscape(offeringID)+"/course", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindReferralStatusCodeCategories lists categories for a status decision
func (c *ProgrammesClient) FindReferralStatusCodeCategories(ctx context.Context, token string, status referral.StatusCode) ([]referral.StatusCategory, error) {
	path := "/reference-data/referral-statuses/" + url.PathEscape(string(status)) + "/categories"

	var out []referral.StatusCategory
	if err := c.rest.Get(ctx, token, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindReferralStatusCodeReasons lists reasons within a category
func (c *ProgrammesClient) FindReferralStatusCodeReasons(ctx context.Context, token, categoryCode string, status referral.StatusCode) ([]referral.StatusReason, error) {
	path := "/reference-data/referral-statuses/" + url.PathEscape(string(status)) +
		"/categories/" + url.PathEscape(categoryCode) + "/reasons"

	var out []referral.StatusReason
	if err := c.rest.Get(ctx, token, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindPni returns the programme needs identifier scores for a person
func (c *ProgrammesClient) FindPni(ctx context.Context, token, prisonNumber string) (*pni.Pni, error) {
	var out pni.Pni
	if err := c.rest.Get(ctx, token, "/pni/"+url.PathEscape(prisonNumber), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
