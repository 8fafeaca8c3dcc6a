package views

import "github.com/acp/web/internal/interfaces/http/presenter"

// Layout carries what every page's layout needs
type Layout struct {
	PageTitle   string
	BackLinkURL string
	Username    string
	Errors      presenter.FieldErrors
}

// ErrorPageData is rendered by the error page
type ErrorPageData struct {
	Layout
	Status  int
	Heading string
	Message string
}

// ReferralHeader is the person and course heading shared by referral pages
type ReferralHeader struct {
	PersonName   string
	PrisonNumber string
	Course       presenter.CourseView
	Status       presenter.Tag
}

// StatusHistoryPage is the status history page
type StatusHistoryPage struct {
	Layout
	ReferralHeader
	ReferralID    string
	Buttons       []presenter.Button
	TimelineItems []presenter.TimelineItem
	PersonRows    []presenter.SummaryRow
	SentenceRows  []presenter.SummaryRow
	PniHref       string
}

// UpdateStatusPage is the decision selection page
type UpdateStatusPage struct {
	Layout
	ReferralHeader
	Action     string
	RadioItems []presenter.RadioItem
}

// CategoryPage is the category step
type CategoryPage struct {
	Layout
	Action        string
	Content       presenter.DecisionContent
	RadioItems    []presenter.RadioItem
	TimelineItems []presenter.TimelineItem
}

// ReasonPage is the reason step
type ReasonPage struct {
	Layout
	Action        string
	Content       presenter.DecisionContent
	RadioItems    []presenter.RadioItem
	TimelineItems []presenter.TimelineItem
}

// ConfirmPage is the confirm step
type ConfirmPage struct {
	Layout
	Action        string
	SummaryRows   []presenter.SummaryRow
	TimelineItems []presenter.TimelineItem
	Notes         string
	MaxNotes      int
}

// PniPage is the programme needs identifier page
type PniPage struct {
	Layout
	ReferralHeader
	Pathway   presenter.PathwayView
	Domains   []presenter.PniDomainSection
	HasScores bool
}
