package render

import (
	"strings"

	"github.com/martin/resumeai/internal/types"
)

// Placeholder values substituted for missing input. Keeping the document
// structurally complete takes priority over data completeness, so the
// renderer never fails or leaves blank regions on partial input.
const (
	defaultName        = "John Doe"
	defaultTitle       = "Professional Title"
	defaultEmail       = "email@example.com"
	defaultPhone       = "(123) 456-7890"
	defaultLocation    = "City, State"
	defaultSummary     = "Professional with experience in the industry."
	defaultJobTitle    = "Job Title"
	defaultCompany     = "Company"
	defaultStartDate   = "Start Date"
	defaultEndDate     = "End Date"
	defaultDescription = "Job description"
	defaultDegree      = "Degree"
	defaultField       = "Field"
	defaultSchool      = "School"
	defaultSkills      = "Skills list"
)

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// contactLine joins email, phone and location with the fixed separator.
func contactLine(info types.PersonalInfo) string {
	return strings.Join([]string{
		orDefault(info.Email, defaultEmail),
		orDefault(info.Phone, defaultPhone),
		orDefault(info.Location, defaultLocation),
	}, " | ")
}

// experienceHeading renders the "Company | StartDate - EndDate" line.
func experienceHeading(exp types.Experience) string {
	return orDefault(exp.Company, defaultCompany) + " | " +
		orDefault(exp.StartDate, defaultStartDate) + " - " + orDefault(exp.EndDate, defaultEndDate)
}

// educationTitle renders the "Degree in Field" line.
func educationTitle(edu types.Education) string {
	return orDefault(edu.Degree, defaultDegree) + " in " + orDefault(edu.Field, defaultField)
}

// educationHeading renders the "School | StartDate - EndDate" line.
func educationHeading(edu types.Education) string {
	return orDefault(edu.School, defaultSchool) + " | " +
		orDefault(edu.StartDate, defaultStartDate) + " - " + orDefault(edu.EndDate, defaultEndDate)
}
