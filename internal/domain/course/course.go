package course

// Course is a read-only view of an accredited programme from the catalogue
type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	AlternateName string `json:"alternateName,omitempty"`
	Audience      string `json:"audience"`
	Description   string `json:"description,omitempty"`
}

// Offering is a course as run at a particular organisation
type Offering struct {
	ID             string `json:"id"`
	OrganisationID string `json:"organisationId"`
	ContactEmail   string `json:"contactEmail"`
	Referable      bool   `json:"referable"`
}
