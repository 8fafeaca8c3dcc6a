package referral

import (
	"strings"

	"github.com/acp/web/internal/domain/shared"
)

// StatusCode is a referral status as understood by the referral API
type StatusCode string

const (
	StatusReferralStarted     StatusCode = "REFERRAL_STARTED"
	StatusReferralSubmitted   StatusCode = "REFERRAL_SUBMITTED"
	StatusAwaitingAssessment  StatusCode = "AWAITING_ASSESSMENT"
	StatusAssessmentStarted   StatusCode = "ASSESSMENT_STARTED"
	StatusAssessedSuitable    StatusCode = "ASSESSED_SUITABLE"
	StatusSuitableNotReady    StatusCode = "SUITABLE_NOT_READY"
	StatusNotSuitable         StatusCode = "NOT_SUITABLE"
	StatusOnProgramme         StatusCode = "ON_PROGRAMME"
	StatusProgrammeComplete   StatusCode = "PROGRAMME_COMPLETE"
	StatusOnHoldAwaitingAsmnt StatusCode = "ON_HOLD_AWAITING_ASSESSMENT"
	StatusDeselected          StatusCode = "DESELECTED"
	StatusWithdrawn           StatusCode = "WITHDRAWN"
)

// String returns the string representation of StatusCode
func (s StatusCode) String() string {
	return string(s)
}

// RequiresCategory reports whether choosing this status needs a category and reason
func (s StatusCode) RequiresCategory() bool {
	switch s {
	case StatusDeselected, StatusWithdrawn:
		return true
	}
	return false
}

// Decision qualifiers used in compound decisions such as "DESELECTED|OPEN"
const (
	decisionSeparator = "|"
	qualifierOpen     = "OPEN"
	qualifierClosed   = "CLOSED"
)

// Decision is the parsed form of an initial status decision
type Decision struct {
	Initial                      string
	DecisionForCategoryAndReason StatusCode
	FinalStatusDecision          StatusCode
}

// ParseDecision splits a submitted decision into the branch driving the
// category and reason steps and the status that will finally be submitted.
// A decision qualified with OPEN keeps the referral at its current status.
func ParseDecision(initial string, current StatusCode) (Decision, error) {
	initial = strings.TrimSpace(initial)
	if initial == "" {
		return Decision{}, shared.NewDomainError(shared.CodeInvalidInput, "Status decision cannot be empty")
	}

	code, qualifier, compound := strings.Cut(initial, decisionSeparator)
	branch := StatusCode(code)
	if branch == "" {
		return Decision{}, shared.NewDomainError(shared.CodeInvalidInput, "Status decision has no status code")
	}

	decision := Decision{
		Initial:                      initial,
		DecisionForCategoryAndReason: branch,
		FinalStatusDecision:          branch,
	}
	if !compound {
		return decision, nil
	}

	switch qualifier {
	case qualifierOpen:
		if current == "" {
			return Decision{}, shared.NewDomainError(shared.CodeInvalidState, "Cannot keep referral open without a current status")
		}
		decision.FinalStatusDecision = current
	case qualifierClosed:
	default:
		return Decision{}, shared.NewDomainError(shared.CodeInvalidInput, "Unknown status decision qualifier: "+qualifier)
	}
	return decision, nil
}

// OpenDecision builds the compound decision value that keeps a referral open
func OpenDecision(code StatusCode) string {
	return string(code) + decisionSeparator + qualifierOpen
}

// ClosedDecision builds the compound decision value that closes a referral
func ClosedDecision(code StatusCode) string {
	return string(code) + decisionSeparator + qualifierClosed
}
