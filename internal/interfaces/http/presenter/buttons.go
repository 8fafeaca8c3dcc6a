package presenter

import "github.com/acp/web/internal/domain/referral"

// Button is a GOV.UK button link
type Button struct {
	Text      string
	Href      string
	Secondary bool
}

// StatusUpdateButtons returns the actions offered on the status history page.
// Referrers may only withdraw, and only when upstream allows it. Programme
// teams may update any open referral.
func StatusUpdateButtons(j Journey, ref *referral.Referral, transitions []referral.StatusTransition) []Button {
	if ref == nil {
		return nil
	}
	if j.IsAssess() {
		if ref.Closed {
			return nil
		}
		return []Button{{Text: "Update status", Href: j.UpdateStatusPath(ref.ID)}}
	}
	if referral.HasTransition(transitions, referral.StatusWithdrawn) {
		return []Button{{Text: "Withdraw referral", Href: j.WithdrawPath(ref.ID), Secondary: true}}
	}
	return nil
}
