// Package person looks people up through prisoner search.
package person

import (
	"context"
	"strings"
	"time"

	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/infrastructure/client"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// SystemTokenProvider issues system tokens scoped to a user
type SystemTokenProvider interface {
	GetSystemClientToken(ctx context.Context, username string) (string, error)
}

// PrisonerSearchAPI finds prisoners by prison number
type PrisonerSearchAPI interface {
	FindPrisoner(ctx context.Context, token, prisonNumber string) (*client.Prisoner, error)
}

// PersonService maps prisoner search records onto people
type PersonService struct {
	tokens SystemTokenProvider
	api    PrisonerSearchAPI
}

// NewPersonService creates a new PersonService
func NewPersonService(tokens SystemTokenProvider, api PrisonerSearchAPI) *PersonService {
	return &PersonService{tokens: tokens, api: api}
}

// GetPerson returns the person with prisonNumber
func (s *PersonService) GetPerson(ctx context.Context, username, prisonNumber string) (*person.Person, error) {
	token, err := s.tokens.GetSystemClientToken(ctx, username)
	if err != nil {
		return nil, err
	}

	prisoner, err := s.api.FindPrisoner(ctx, token, prisonNumber)
	if err != nil {
		return nil, err
	}
	p := PrisonerToPerson(prisoner)
	return &p, nil
}

// PrisonerToPerson converts a prisoner search record. Names arrive upper-cased
// and are title-cased for display.
func PrisonerToPerson(p *client.Prisoner) person.Person {
	title := cases.Title(language.BritishEnglish)

	out := person.Person{
		Name:          title.String(strings.TrimSpace(p.FirstName + " " + p.LastName)),
		PrisonNumber:  p.PrisonerNumber,
		DateOfBirth:   parseDate(p.DateOfBirth),
		Ethnicity:     p.Ethnicity,
		Gender:        p.Gender,
		Religion:      p.Religion,
		Setting:       "Custody",
		CurrentPrison: p.PrisonName,
		SentenceType:  sentenceType(p),
	}
	out.EarliestReleaseDate = earliestReleaseDate(p)
	return out
}

func sentenceType(p *client.Prisoner) string {
	if p.IndeterminateSentnc {
		return "Indeterminate"
	}
	if p.LegalStatus == "" {
		return ""
	}
	return "Determinate"
}

// earliestReleaseDate is the soonest of the conditional release and release
// dates, or of the tariff and parole eligibility dates for indeterminate sentences.
func earliestReleaseDate(p *client.Prisoner) *time.Time {
	candidates := []string{p.ConditionalRelease, p.ReleaseDate}
	if p.IndeterminateSentnc {
		candidates = []string{p.TariffDate, p.ParoleEligibility}
	}

	var earliest *time.Time
	for _, c := range candidates {
		d := parseDate(c)
		if d == nil {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = d
		}
	}
	return earliest
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
