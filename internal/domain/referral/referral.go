package referral

import "time"

// Referral is a read-only view of a referral record held by the referral API
type Referral struct {
	ID                string     `json:"id"`
	OfferingID        string     `json:"offeringId"`
	PrisonNumber      string     `json:"prisonNumber"`
	ReferrerUsername  string     `json:"referrerUsername"`
	Status            StatusCode `json:"status"`
	StatusDescription string     `json:"statusDescription"`
	StatusColour      string     `json:"statusColour"`
	Closed            bool       `json:"closed"`
	SubmittedOn       *time.Time `json:"submittedOn,omitempty"`
}

// StatusHistoryEntry is one event in a referral's status history, newest first
type StatusHistoryEntry struct {
	ID                  string     `json:"id"`
	Status              StatusCode `json:"status"`
	StatusDescription   string     `json:"statusDescription"`
	StatusColour        string     `json:"statusColour"`
	CategoryDescription string     `json:"categoryDescription,omitempty"`
	ReasonDescription   string     `json:"reasonDescription,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	StatusStartDate     time.Time  `json:"statusStartDate"`
	Username            string     `json:"username"`

	// ByLineText is resolved locally from the user management API
	ByLineText string `json:"-"`
}

// StatusTransition is a status the referral may move to next
type StatusTransition struct {
	Status              StatusCode `json:"status"`
	Description         string     `json:"description"`
	HintText            string     `json:"hintText,omitempty"`
	DeselectAndKeepOpen bool       `json:"deselectAndKeepOpen,omitempty"`
}

// StatusCategory is a reference-data category for a status decision
type StatusCategory struct {
	Code               string     `json:"code"`
	Description        string     `json:"description"`
	ReferralStatusCode StatusCode `json:"referralStatusCode"`
}

// StatusReason is a reference-data reason within a status category
type StatusReason struct {
	Code                       string `json:"code"`
	Description                string `json:"description"`
	ReferralStatusCategoryCode string `json:"referralStatusCategoryCode"`
}

// StatusUpdate is the payload submitted to the referral API to change status
type StatusUpdate struct {
	Status   StatusCode `json:"status"`
	Category string     `json:"category,omitempty"`
	Reason   string     `json:"reason,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	PtUser   bool       `json:"ptUser"`
}

// HasTransition reports whether status appears in the given transitions
func HasTransition(transitions []StatusTransition, status StatusCode) bool {
	for _, t := range transitions {
		if t.Status == status {
			return true
		}
	}
	return false
}

// FindCategory returns the category with the given code
func FindCategory(categories []StatusCategory, code string) (StatusCategory, bool) {
	for _, c := range categories {
		if c.Code == code {
			return c, true
		}
	}
	return StatusCategory{}, false
}

// FindReason returns the reason with the given code
func FindReason(reasons []StatusReason, code string) (StatusReason, bool) {
	for _, r := range reasons {
		if r.Code == code {
			return r, true
		}
	}
	return StatusReason{}, false
}

// TransitionOptions narrows the status transitions offered for a referral.
// PtUser asks for the programme team's view; DeselectAndKeepOpen asks for the
// transitions available once a deselection keeps the referral open.
type TransitionOptions struct {
	PtUser              bool
	DeselectAndKeepOpen bool
}
