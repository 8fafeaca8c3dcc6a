package person

import "time"

// Person is a read-only view of someone held in custody, as returned by person search
type Person struct {
	Name                string     `json:"name"`
	PrisonNumber        string     `json:"prisonNumber"`
	DateOfBirth         *time.Time `json:"dateOfBirth,omitempty"`
	Ethnicity           string     `json:"ethnicity,omitempty"`
	Gender              string     `json:"gender,omitempty"`
	Religion            string     `json:"religionOrBelief,omitempty"`
	SentenceType        string     `json:"sentenceType,omitempty"`
	Setting             string     `json:"setting,omitempty"`
	CurrentPrison       string     `json:"currentPrison,omitempty"`
	EarliestReleaseDate *time.Time `json:"earliestReleaseDate,omitempty"`
}

// AgeOn returns the person's age in whole years on the given date, or -1 when unknown
func (p Person) AgeOn(on time.Time) int {
	if p.DateOfBirth == nil {
		return -1
	}
	dob := *p.DateOfBirth
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}
