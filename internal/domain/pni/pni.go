// Package pni holds the programme needs identifier scores computed by the
// risk and need scoring service. Nothing here derives scores; it only carries them.
package pni

// Pathway is the recommended programme pathway
type Pathway string

const (
	PathwayHighIntensity      Pathway = "HIGH_INTENSITY_BC"
	PathwayModerateIntensity  Pathway = "MODERATE_INTENSITY_BC"
	PathwayAlternative        Pathway = "ALTERNATIVE_PATHWAY"
	PathwayMissingInformation Pathway = "MISSING_INFORMATION"
)

// Pni is the full scoring result for one person
type Pni struct {
	PrisonNumber     string      `json:"prisonNumber"`
	AssessmentID     string      `json:"assessmentId,omitempty"`
	ProgrammePathway *Pathway    `json:"programmePathway,omitempty"`
	NeedsScore       *NeedsScore `json:"needsScore,omitempty"`
	RiskScore        *RiskScore  `json:"riskScore,omitempty"`
}

// NeedsScore groups the four need domains
type NeedsScore struct {
	OverallNeedsScore *int         `json:"overallNeedsScore,omitempty"`
	Classification    string       `json:"classification,omitempty"`
	DomainScore       DomainScores `json:"domainScore"`
}

// RiskScore carries the risk classification
type RiskScore struct {
	Classification string `json:"classification,omitempty"`
}

// DomainScores holds each need domain
type DomainScores struct {
	SexDomainScore            SexDomainScore            `json:"sexDomainScore"`
	ThinkingDomainScore       ThinkingDomainScore       `json:"thinkingDomainScore"`
	RelationshipDomainScore   RelationshipDomainScore   `json:"relationshipDomainScore"`
	SelfManagementDomainScore SelfManagementDomainScore `json:"selfManagementDomainScore"`
}

// SubScore is one labelled need score in a domain. Score is nil when missing.
type SubScore struct {
	Label string
	Score *int
}

// Domain is any need domain that can list its sub-scores in display order
// and report the overall score the scoring service gave it
type Domain interface {
	SubScores() []SubScore
	Overall() *int
}

// SexDomainScore is the sex domain
type SexDomainScore struct {
	OverallSexDomainScore *int `json:"overAllSexDomainScore,omitempty"`
	IndividualSexScores   struct {
		SexualPreOccupation           *int `json:"sexualPreOccupation,omitempty"`
		OffenceRelatedSexualInterests *int `json:"offenceRelatedSexualInterests,omitempty"`
		EmotionalCongruence           *int `json:"emotionalCongruence,omitempty"`
	} `json:"individualSexScores"`
}

// Overall implements Domain
func (d SexDomainScore) Overall() *int { return d.OverallSexDomainScore }

// SubScores implements Domain
func (d SexDomainScore) SubScores() []SubScore {
	s := d.IndividualSexScores
	return []SubScore{
		{Label: "Sexual pre-occupation", Score: s.SexualPreOccupation},
		{Label: "Offence-related sexual interests", Score: s.OffenceRelatedSexualInterests},
		{Label: "Emotional congruence with children", Score: s.EmotionalCongruence},
	}
}

// ThinkingDomainScore is the thinking domain
type ThinkingDomainScore struct {
	OverallThinkingDomainScore *int `json:"overallThinkingDomainScore,omitempty"`
	IndividualThinkingScores   struct {
		ProCriminalAttitudes *int `json:"proCriminalAttitudes,omitempty"`
		HostileOrientation   *int `json:"hostileOrientation,omitempty"`
	} `json:"individualThinkingScores"`
}

// Overall implements Domain
func (d ThinkingDomainScore) Overall() *int { return d.OverallThinkingDomainScore }

// SubScores implements Domain
func (d ThinkingDomainScore) SubScores() []SubScore {
	s := d.IndividualThinkingScores
	return []SubScore{
		{Label: "Pro-criminal attitudes", Score: s.ProCriminalAttitudes},
		{Label: "Hostile orientation", Score: s.HostileOrientation},
	}
}

// RelationshipDomainScore is the relationships domain
type RelationshipDomainScore struct {
	OverallRelationshipDomainScore *int `json:"overallRelationshipDomainScore,omitempty"`
	IndividualRelationshipScores   struct {
		CurRelCloseFamily              *int `json:"curRelCloseFamily,omitempty"`
		PrevExpCloseRel                *int `json:"prevExpCloseRel,omitempty"`
		EasilyInfluencedByCriminals    *int `json:"easilyInfluencedByCriminals,omitempty"`
		AggressiveControllingBehaviour *int `json:"aggressiveControllingBehaviour,omitempty"`
	} `json:"individualRelationshipScores"`
}

// Overall implements Domain
func (d RelationshipDomainScore) Overall() *int { return d.OverallRelationshipDomainScore }

// SubScores implements Domain
func (d RelationshipDomainScore) SubScores() []SubScore {
	s := d.IndividualRelationshipScores
	return []SubScore{
		{Label: "Relationship to family members", Score: s.CurRelCloseFamily},
		{Label: "Experience of childhood", Score: s.PrevExpCloseRel},
		{Label: "Easily influenced by criminal associates", Score: s.EasilyInfluencedByCriminals},
		{Label: "Aggressive or controlling behaviour", Score: s.AggressiveControllingBehaviour},
	}
}

// SelfManagementDomainScore is the self-management domain
type SelfManagementDomainScore struct {
	OverallSelfManagementDomainScore *int `json:"overallSelfManagementDomainScore,omitempty"`
	IndividualSelfManagementScores   struct {
		Impulsivity          *int `json:"impulsivity,omitempty"`
		TemperControl        *int `json:"temperControl,omitempty"`
		ProblemSolvingSkills *int `json:"problemSolvingSkills,omitempty"`
		DifficultiesCoping   *int `json:"difficultiesCoping,omitempty"`
	} `json:"individualSelfManagementScores"`
}

// Overall implements Domain
func (d SelfManagementDomainScore) Overall() *int { return d.OverallSelfManagementDomainScore }

// SubScores implements Domain
func (d SelfManagementDomainScore) SubScores() []SubScore {
	s := d.IndividualSelfManagementScores
	return []SubScore{
		{Label: "Impulsivity", Score: s.Impulsivity},
		{Label: "Temper control", Score: s.TemperControl},
		{Label: "Problem solving skills", Score: s.ProblemSolvingSkills},
		{Label: "Difficulties coping", Score: s.DifficultiesCoping},
	}
}
