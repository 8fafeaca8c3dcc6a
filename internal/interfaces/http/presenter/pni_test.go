package presenter

import (
	"encoding/json"
	"testing"

	"github.com/acp/web/internal/domain/pni"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNeedScoreToString(t *testing.T) {
	tests := []struct {
		score *int
		want  string
	}{
		{intPtr(0), "Low need"},
		{intPtr(1), "Medium need"},
		{intPtr(2), "High need"},
		{intPtr(3), "Missing information"},
		{intPtr(-1), "Missing information"},
		{nil, "Missing information"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedScoreToString(tt.score))
		})
	}
}

func TestPathwayContent(t *testing.T) {
	high := pni.PathwayHighIntensity
	moderate := pni.PathwayModerateIntensity
	alternative := pni.PathwayAlternative
	missing := pni.PathwayMissingInformation
	unknown := pni.Pathway("SOMETHING_NEW")

	assert.Equal(t, "high-intensity-pathway", PathwayContent("Del Hatton", &high).TestID)
	assert.Contains(t, PathwayContent("Del Hatton", &high).BodyText, "Del Hatton")
	assert.Equal(t, "moderate-intensity-pathway", PathwayContent("Del Hatton", &moderate).TestID)
	assert.Equal(t, "alternative-pathway", PathwayContent("Del Hatton", &alternative).TestID)
	assert.Equal(t, "missing-information-pathway", PathwayContent("Del Hatton", &missing).TestID)
	assert.Equal(t, "missing-information-pathway", PathwayContent("Del Hatton", &unknown).TestID)
	assert.Equal(t, "missing-information-pathway", PathwayContent("Del Hatton", nil).TestID)
}

func TestDomainScoreRows(t *testing.T) {
	var thinking pni.ThinkingDomainScore
	thinking.IndividualThinkingScores.ProCriminalAttitudes = intPtr(1)
	thinking.IndividualThinkingScores.HostileOrientation = intPtr(2)
	thinking.OverallThinkingDomainScore = intPtr(2)

	rows := DomainScoreRows(thinking)
	require.Len(t, rows, 3)
	assert.Equal(t, SummaryRow{Key: "Pro-criminal attitudes", Value: "Medium need"}, rows[0])
	assert.Equal(t, SummaryRow{Key: "Hostile orientation", Value: "High need"}, rows[1])
	assert.Equal(t, SummaryRow{Key: "Overall result", Value: "High need"}, rows[2])
}

func TestDomainScoreRows_OverallFromScoringService(t *testing.T) {
	var result pni.ThinkingDomainScore
	require.NoError(t, json.Unmarshal([]byte(`{
		"overallThinkingDomainScore": 2,
		"individualThinkingScores": {"proCriminalAttitudes": 0, "hostileOrientation": null}
	}`), &result))

	rows := DomainScoreRows(result)
	require.Len(t, rows, 3)
	assert.Equal(t, "Low need", rows[0].Value)
	assert.Equal(t, "Missing information", rows[1].Value)
	assert.Equal(t, SummaryRow{Key: "Overall result", Value: "High need"}, rows[2])
}

func TestDomainScoreRows_MissingOverall(t *testing.T) {
	var sex pni.SexDomainScore
	sex.IndividualSexScores.SexualPreOccupation = intPtr(2)
	sex.IndividualSexScores.OffenceRelatedSexualInterests = intPtr(2)
	sex.IndividualSexScores.EmotionalCongruence = intPtr(2)

	rows := DomainScoreRows(sex)
	require.Len(t, rows, 4)
	assert.Equal(t, "High need", rows[0].Value)
	assert.Equal(t, SummaryRow{Key: "Overall result", Value: "Missing information"}, rows[3])
}

func TestPniDomainSections_NoData(t *testing.T) {
	sections := PniDomainSections(nil)
	require.Len(t, sections, 4)
	for _, s := range sections {
		last := s.Rows[len(s.Rows)-1]
		assert.Equal(t, "Overall result", last.Key)
		assert.Equal(t, "Missing information", last.Value)
	}
}
