package presenter

import "github.com/acp/web/internal/domain/referral"

// DecisionContent is the fixed copy for a step of a decision that needs a
// category and reason
type DecisionContent struct {
	PageDescription string
	PageHeading     string
	RadioLegend     string
	// Noun names the decision inside sentences, e.g. "deselection"
	Noun string
}

// CategoryContent returns the category page copy for decision. The second
// value is false when the decision has no category step.
func CategoryContent(decision referral.StatusCode) (DecisionContent, bool) {
	switch decision {
	case referral.StatusDeselected:
		return DecisionContent{
			PageDescription: "Deselecting someone means they cannot continue the programme.",
			PageHeading:     "Deselection category",
			RadioLegend:     "Choose the deselection category",
			Noun:            "deselection",
		}, true
	case referral.StatusWithdrawn:
		return DecisionContent{
			PageDescription: "Withdrawing a referral means the person will not be assessed for or start the programme.",
			PageHeading:     "Withdrawal category",
			RadioLegend:     "Select the withdrawal category",
			Noun:            "withdrawal",
		}, true
	}
	return DecisionContent{}, false
}

// ReasonContent returns the reason page copy for decision
func ReasonContent(decision referral.StatusCode) (DecisionContent, bool) {
	switch decision {
	case referral.StatusDeselected:
		return DecisionContent{
			PageDescription: "Deselecting someone means they cannot continue the programme.",
			PageHeading:     "Deselection reason",
			RadioLegend:     "Choose the deselection reason",
			Noun:            "deselection",
		}, true
	case referral.StatusWithdrawn:
		return DecisionContent{
			PageDescription: "Withdrawing a referral means the person will not be assessed for or start the programme.",
			PageHeading:     "Withdrawal reason",
			RadioLegend:     "Select the withdrawal reason",
			Noun:            "withdrawal",
		}, true
	}
	return DecisionContent{}, false
}

// CategoryRequiredMessage is the error shown when no category is chosen
func CategoryRequiredMessage(decision referral.StatusCode) string {
	if content, ok := CategoryContent(decision); ok {
		return "Select a " + content.Noun + " category"
	}
	return "Select a category"
}

// ReasonRequiredMessage is the error shown when no reason is chosen
func ReasonRequiredMessage(decision referral.StatusCode) string {
	if content, ok := ReasonContent(decision); ok {
		return "Select a " + content.Noun + " reason"
	}
	return "Select a reason"
}

// Messages for the other form steps
const (
	DecisionRequiredMessage = "Select an option"
	NotesTooLongMessage     = "Notes must be 500 characters or fewer"
)

// MaxNotesLength bounds the notes a user can add to a status change
const MaxNotesLength = 500
