package presenter

import "github.com/acp/web/internal/domain/pni"

// MissingInformation labels an absent score
const MissingInformation = "Missing information"

// NeedScoreToString labels a need score
func NeedScoreToString(score *int) string {
	if score == nil {
		return MissingInformation
	}
	switch *score {
	case 0:
		return "Low need"
	case 1:
		return "Medium need"
	case 2:
		return "High need"
	}
	return MissingInformation
}

// PathwayView is the narrative block for a recommended pathway
type PathwayView struct {
	Heading  string
	BodyText string
	Class    string
	TestID   string
}

// PathwayContent returns the narrative for pathway. A nil or unrecognised
// pathway gets the missing information narrative.
func PathwayContent(personName string, pathway *pni.Pathway) PathwayView {
	var p pni.Pathway
	if pathway != nil {
		p = *pathway
	}

	switch p {
	case pni.PathwayHighIntensity:
		return PathwayView{
			Heading:  "High intensity",
			BodyText: "Based on the risk and need scores, " + personName + " may be eligible for the high intensity pathway.",
			Class:    "pathway-content--high",
			TestID:   "high-intensity-pathway",
		}
	case pni.PathwayModerateIntensity:
		return PathwayView{
			Heading:  "Moderate intensity",
			BodyText: "Based on the risk and need scores, " + personName + " may be eligible for the moderate intensity pathway.",
			Class:    "pathway-content--moderate",
			TestID:   "moderate-intensity-pathway",
		}
	case pni.PathwayAlternative:
		return PathwayView{
			Heading:  "Not eligible",
			BodyText: "Based on the risk and need scores, " + personName + " is not eligible for either the moderate or high intensity pathway.",
			Class:    "pathway-content--alternative",
			TestID:   "alternative-pathway",
		}
	}
	return PathwayView{
		Heading:  "Information missing",
		BodyText: "There is not enough information in the layer 3 assessment to calculate the recommended programme pathway for " + personName + ".",
		Class:    "pathway-content--missing",
		TestID:   "missing-information-pathway",
	}
}

// DomainScoreRows lists each sub-score of domain followed by the overall
// result reported for the domain.
func DomainScoreRows(domain pni.Domain) []SummaryRow {
	subScores := domain.SubScores()
	rows := make([]SummaryRow, 0, len(subScores)+1)
	for _, s := range subScores {
		rows = append(rows, SummaryRow{Key: s.Label, Value: NeedScoreToString(s.Score)})
	}
	return append(rows, SummaryRow{Key: "Overall result", Value: NeedScoreToString(domain.Overall())})
}

// PniDomainSection is one scored domain on the PNI page
type PniDomainSection struct {
	Heading string
	Rows    []SummaryRow
}

// PniDomainSections lists all four need domains. A nil result yields
// sections with every score missing.
func PniDomainSections(result *pni.Pni) []PniDomainSection {
	var scores pni.DomainScores
	if result != nil && result.NeedsScore != nil {
		scores = result.NeedsScore.DomainScore
	}
	return []PniDomainSection{
		{Heading: "Sex", Rows: DomainScoreRows(scores.SexDomainScore)},
		{Heading: "Thinking", Rows: DomainScoreRows(scores.ThinkingDomainScore)},
		{Heading: "Relationships", Rows: DomainScoreRows(scores.RelationshipDomainScore)},
		{Heading: "Self-management", Rows: DomainScoreRows(scores.SelfManagementDomainScore)},
	}
}
