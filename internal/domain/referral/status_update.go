package referral

import "github.com/acp/web/internal/domain/shared"

// StatusUpdateSessionData accumulates an in-progress status change while the
// user moves through the decision, category, reason and confirm steps.
//
// It lives in the HTTP session only. The referral API stays authoritative.
type StatusUpdateSessionData struct {
	ReferralID                   string     `json:"referralId"`
	InitialStatusDecision        string     `json:"initialStatusDecision"`
	DecisionForCategoryAndReason StatusCode `json:"decisionForCategoryAndReason,omitempty"`
	FinalStatusDecision          StatusCode `json:"finalStatusDecision"`
	StatusCategoryCode           string     `json:"statusCategoryCode,omitempty"`
	StatusReasonCode             string     `json:"statusReasonCode,omitempty"`
}

// NewStatusUpdateSessionData starts a status-update record for a referral
func NewStatusUpdateSessionData(referralID string, decision Decision) (*StatusUpdateSessionData, error) {
	if referralID == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Referral ID cannot be empty")
	}
	if decision.FinalStatusDecision == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Final status decision cannot be empty")
	}
	return &StatusUpdateSessionData{
		ReferralID:                   referralID,
		InitialStatusDecision:        decision.Initial,
		DecisionForCategoryAndReason: decision.DecisionForCategoryAndReason,
		FinalStatusDecision:          decision.FinalStatusDecision,
	}, nil
}

// BelongsTo reports whether the record was started for referralID
func (d *StatusUpdateSessionData) BelongsTo(referralID string) bool {
	return d != nil && d.ReferralID == referralID
}

// HasDecision reports whether a category/reason decision branch is set
func (d *StatusUpdateSessionData) HasDecision() bool {
	return d != nil && d.DecisionForCategoryAndReason != ""
}

// RequiresCategory reports whether the decision branch needs a category and reason
func (d *StatusUpdateSessionData) RequiresCategory() bool {
	return d.HasDecision() && d.DecisionForCategoryAndReason.RequiresCategory()
}

// SelectCategory records the chosen category. Reasons depend on the
// category, so any previously chosen reason is discarded.
func (d *StatusUpdateSessionData) SelectCategory(code string) {
	d.StatusCategoryCode = code
	d.StatusReasonCode = ""
}

// SelectReason records the chosen reason
func (d *StatusUpdateSessionData) SelectReason(code string) {
	d.StatusReasonCode = code
}

// ReadyToSubmit reports whether every step the decision needs has been completed
func (d *StatusUpdateSessionData) ReadyToSubmit() bool {
	if d == nil || d.FinalStatusDecision == "" {
		return false
	}
	if d.RequiresCategory() {
		return d.StatusCategoryCode != "" && d.StatusReasonCode != ""
	}
	return true
}

// ToStatusUpdate builds the upstream payload for this record
func (d *StatusUpdateSessionData) ToStatusUpdate(notes string, ptUser bool) StatusUpdate {
	return StatusUpdate{
		Status:   d.FinalStatusDecision,
		Category: d.StatusCategoryCode,
		Reason:   d.StatusReasonCode,
		Notes:    notes,
		PtUser:   ptUser,
	}
}
