package presenter

import "github.com/acp/web/internal/domain/course"

// CourseView is a course as shown in page headings
type CourseView struct {
	ID          string
	DisplayName string
	Audience    Tag
}

// PresentCourse builds the heading view of a course. The alternate name is
// shown in brackets when present.
func PresentCourse(c *course.Course) CourseView {
	if c == nil {
		return CourseView{}
	}
	name := c.Name
	if c.AlternateName != "" {
		name += " (" + c.AlternateName + ")"
	}
	return CourseView{
		ID:          c.ID,
		DisplayName: name,
		Audience:    Tag{Text: c.Audience, Colour: audienceColour(c.Audience)},
	}
}

func audienceColour(audience string) string {
	switch audience {
	case "Sexual offence":
		return "orange"
	case "Extremism offence":
		return "turquoise"
	case "Gang offence":
		return "purple"
	case "General violence offence":
		return "yellow"
	case "Intimate partner violence offence":
		return "green"
	case "General offence":
		return "pink"
	}
	return "grey"
}
