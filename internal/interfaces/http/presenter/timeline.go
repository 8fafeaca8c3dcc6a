package presenter

import (
	"time"

	"github.com/acp/web/internal/domain/referral"
)

// DateFormat is the GOV.UK long date style
const DateFormat = "2 January 2006"

// Tag is a coloured GOV.UK tag
type Tag struct {
	Text   string
	Colour string
}

// SummaryRow is one key/value row of a GOV.UK summary list
type SummaryRow struct {
	Key   string
	Value string
	// TestID is rendered as data-testid when set
	TestID string
}

// TimelineItem is one event of the status history timeline
type TimelineItem struct {
	Label    string
	Tag      Tag
	Datetime time.Time
	Date     string
	ByLine   string
	Details  []SummaryRow
}

// StatusHistoryTimelineItems builds timeline items in the order given,
// which upstream returns newest first
func StatusHistoryTimelineItems(history []referral.StatusHistoryEntry) []TimelineItem {
	items := make([]TimelineItem, 0, len(history))
	for _, entry := range history {
		label := "Status update"
		if entry.Status == referral.StatusReferralSubmitted {
			label = "Referral submitted"
		}

		var details []SummaryRow
		if entry.CategoryDescription != "" {
			details = append(details, SummaryRow{Key: "Category", Value: entry.CategoryDescription})
		}
		if entry.ReasonDescription != "" {
			details = append(details, SummaryRow{Key: "Reason", Value: entry.ReasonDescription})
		}
		if entry.Notes != "" {
			details = append(details, SummaryRow{Key: "Notes", Value: entry.Notes})
		}

		items = append(items, TimelineItem{
			Label:    label,
			Tag:      Tag{Text: entry.StatusDescription, Colour: entry.StatusColour},
			Datetime: entry.StatusStartDate,
			Date:     entry.StatusStartDate.Format(DateFormat),
			ByLine:   entry.ByLineText,
			Details:  details,
		})
	}
	return items
}

// LatestTimelineItem returns a timeline holding only the newest entry
func LatestTimelineItem(history []referral.StatusHistoryEntry) []TimelineItem {
	if len(history) == 0 {
		return []TimelineItem{}
	}
	return StatusHistoryTimelineItems(history[:1])
}
