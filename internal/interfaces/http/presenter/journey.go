// Package presenter maps upstream entities into the view models the HTML
// templates render. Functions here are pure and never fail.
package presenter

import (
	"net/url"
	"strings"
)

// Roles granted by HMPPS Auth
const (
	RoleReferrer      = "ROLE_ACP_REFERRER"
	RoleProgrammeTeam = "ROLE_ACP_PROGRAMME_TEAM"
)

// Journey is one of the two parallel mounts of the referral pages. Refer is
// used by prison staff making referrals; assess by programme teams.
type Journey struct {
	Name         string
	Base         string
	Roles        []string
	CaseListPath string
}

var (
	// Refer is the referrer journey
	Refer = Journey{
		Name:         "refer",
		Base:         "/refer",
		Roles:        []string{RoleReferrer},
		CaseListPath: "/refer/referrals/case-list",
	}

	// Assess is the programme team journey
	Assess = Journey{
		Name:         "assess",
		Base:         "/assess",
		Roles:        []string{RoleProgrammeTeam},
		CaseListPath: "/assess/referrals/case-list",
	}
)

// JourneyForPath picks the journey a request path belongs to
func JourneyForPath(path string) Journey {
	if path == Assess.Base || strings.HasPrefix(path, Assess.Base+"/") {
		return Assess
	}
	return Refer
}

// IsAssess reports whether this is the programme team journey
func (j Journey) IsAssess() bool {
	return j.Name == Assess.Name
}

func (j Journey) referral(referralID string) string {
	return j.Base + "/referrals/" + url.PathEscape(referralID)
}

// StatusHistoryPath is the status history page, the flow's reset point
func (j Journey) StatusHistoryPath(referralID string) string {
	return j.referral(referralID) + "/status-history"
}

// UpdateStatusPath is the decision selection page
func (j Journey) UpdateStatusPath(referralID string) string {
	return j.referral(referralID) + "/update-status"
}

// WithdrawPath starts a withdrawal
func (j Journey) WithdrawPath(referralID string) string {
	return j.referral(referralID) + "/withdraw"
}

// CategoryPath is the category step
func (j Journey) CategoryPath(referralID string) string {
	return j.UpdateStatusPath(referralID) + "/category"
}

// ReasonPath is the reason step
func (j Journey) ReasonPath(referralID string) string {
	return j.UpdateStatusPath(referralID) + "/reason"
}

// ConfirmPath is the confirm step
func (j Journey) ConfirmPath(referralID string) string {
	return j.UpdateStatusPath(referralID) + "/confirm"
}

// PniPath is the programme needs identifier page
func (j Journey) PniPath(referralID string) string {
	return j.referral(referralID) + "/programme-needs-identifier"
}
