package presenter

import (
	"strconv"
	"time"

	"github.com/acp/web/internal/domain/person"
)

const notEntered = "Not entered"

// PersonSummaryRows lists a person's details for the referral pages
func PersonSummaryRows(p *person.Person, now time.Time) []SummaryRow {
	if p == nil {
		return nil
	}

	dob := notEntered
	if p.DateOfBirth != nil {
		dob = p.DateOfBirth.Format(DateFormat) + " (" + strconv.Itoa(p.AgeOn(now)) + " years old)"
	}

	return []SummaryRow{
		{Key: "Name", Value: orNotEntered(p.Name), TestID: "name"},
		{Key: "Prison number", Value: orNotEntered(p.PrisonNumber), TestID: "prison-number"},
		{Key: "Date of birth", Value: dob, TestID: "date-of-birth"},
		{Key: "Ethnicity", Value: orNotEntered(p.Ethnicity), TestID: "ethnicity"},
		{Key: "Gender", Value: orNotEntered(p.Gender), TestID: "gender"},
		{Key: "Religion or belief", Value: orNotEntered(p.Religion), TestID: "religion-or-belief"},
		{Key: "Setting", Value: orNotEntered(p.Setting), TestID: "setting"},
		{Key: "Current prison", Value: orNotEntered(p.CurrentPrison), TestID: "current-prison"},
	}
}

// SentenceRows lists sentence details
func SentenceRows(p *person.Person) []SummaryRow {
	if p == nil {
		return nil
	}
	release := notEntered
	if p.EarliestReleaseDate != nil {
		release = p.EarliestReleaseDate.Format(DateFormat)
	}
	return []SummaryRow{
		{Key: "Sentence type", Value: orNotEntered(p.SentenceType), TestID: "sentence-type"},
		{Key: "Earliest release date", Value: release, TestID: "earliest-release-date"},
	}
}

func orNotEntered(v string) string {
	if v == "" {
		return notEntered
	}
	return v
}
