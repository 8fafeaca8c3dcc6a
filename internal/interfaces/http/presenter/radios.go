package presenter

import "github.com/acp/web/internal/domain/referral"

// RadioItem is one option of a GOV.UK radios component
type RadioItem struct {
	Value   string
	Text    string
	Hint    string
	Checked bool
}

// StatusTransitionRadioItems builds the decision options. A deselection that
// may keep the referral open becomes two options, open and closed.
func StatusTransitionRadioItems(transitions []referral.StatusTransition, selected string) []RadioItem {
	items := make([]RadioItem, 0, len(transitions)+1)
	for _, t := range transitions {
		if t.Status == referral.StatusDeselected && t.DeselectAndKeepOpen {
			open := referral.OpenDecision(t.Status)
			closed := referral.ClosedDecision(t.Status)
			items = append(items,
				RadioItem{
					Value:   open,
					Text:    "Deselect and keep referral open",
					Hint:    "This person cannot continue the programme now but may be able to join it later.",
					Checked: selected == open,
				},
				RadioItem{
					Value:   closed,
					Text:    "Deselect and close referral",
					Hint:    "This person cannot continue the programme. The referral will be closed.",
					Checked: selected == closed,
				},
			)
			continue
		}
		items = append(items, RadioItem{
			Value:   string(t.Status),
			Text:    t.Description,
			Hint:    t.HintText,
			Checked: selected == string(t.Status),
		})
	}
	return items
}

// CategoryRadioItems builds the category options, pre-selecting selected
func CategoryRadioItems(categories []referral.StatusCategory, selected string) []RadioItem {
	items := make([]RadioItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, RadioItem{Value: c.Code, Text: c.Description, Checked: c.Code == selected})
	}
	return items
}

// ReasonRadioItems builds the reason options, pre-selecting selected
func ReasonRadioItems(reasons []referral.StatusReason, selected string) []RadioItem {
	items := make([]RadioItem, 0, len(reasons))
	for _, r := range reasons {
		items = append(items, RadioItem{Value: r.Code, Text: r.Description, Checked: r.Code == selected})
	}
	return items
}
