// Package types provides shared type definitions for resume and cover letter
// data exchanged between the API, the generation gateway, and the renderer.
package types

// PersonalInfo holds the candidate's contact block. All fields are optional;
// consumers substitute placeholders for anything missing.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// Experience is a single work history entry.
type Experience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ResumeInput is the full structured form input for resume generation.
type ResumeInput struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experiences  []Experience `json:"experiences"`
	Education    []Education  `json:"education"`
	Skills       string       `json:"skills"`
}

// CoverLetterInput is the structured form input for cover letter generation.
type CoverLetterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Position   string `json:"position"`
	Recipient  string `json:"recipient"`
	Strengths  string `json:"strengths"`
	Experience string `json:"experience"`
	Motivation string `json:"motivation"`
}

// NormalizedContent is the parsed, backend-agnostic representation of
// generated content: a loose mapping of section name to section content
// (summary, experience, education, skills for resumes; greeting, introduction,
// body, conclusion for cover letters). The sections themselves are free-form
// since each backend structures them differently.
type NormalizedContent = map[string]any
