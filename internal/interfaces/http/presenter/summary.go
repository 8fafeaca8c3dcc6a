package presenter

import "github.com/acp/web/internal/domain/referral"

// StatusUpdateSummaryRows summarises a pending status change on the confirm
// page. Empty category and reason descriptions are left out.
func StatusUpdateSummaryRows(statusDescription, categoryDescription, reasonDescription string) []SummaryRow {
	rows := []SummaryRow{{Key: "New status", Value: statusDescription, TestID: "new-status"}}
	if categoryDescription != "" {
		rows = append(rows, SummaryRow{Key: "Category", Value: categoryDescription, TestID: "category"})
	}
	if reasonDescription != "" {
		rows = append(rows, SummaryRow{Key: "Reason", Value: reasonDescription, TestID: "reason"})
	}
	return rows
}

// DecisionDescription names the chosen decision the way the decision page
// offered it. Compound deselections use their radio text; other decisions use
// the upstream transition description, falling back to the status code.
func DecisionDescription(initial string, transitions []referral.StatusTransition) string {
	for _, item := range StatusTransitionRadioItems(transitions, "") {
		if item.Value == initial {
			return item.Text
		}
	}
	switch initial {
	case referral.OpenDecision(referral.StatusDeselected):
		return "Deselect and keep referral open"
	case referral.ClosedDecision(referral.StatusDeselected):
		return "Deselect and close referral"
	}
	return initial
}
