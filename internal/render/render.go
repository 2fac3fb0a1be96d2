// Package render produces downloadable resume documents from structured
// resume data. Two encoders share one content model: a flow-layout PDF and a
// paragraph/run based DOCX. Both substitute literal placeholders for missing
// fields so the document structure stays intact regardless of input
// completeness.
package render

import (
	"fmt"

	"github.com/martin/resumeai/internal/types"
)

// Supported output formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// DocumentRequest is the input to Render. All content fields are optional.
type DocumentRequest struct {
	PersonalInfo types.PersonalInfo `json:"personalInfo"`
	Experiences  []types.Experience `json:"experiences"`
	Education    []types.Education  `json:"education"`
	Skills       string             `json:"skills"`
	Format       string             `json:"format"`
}

// Render produces the document bytes for the requested format.
// An unknown format is an InvalidFormatError, not a silent default.
func Render(req DocumentRequest) ([]byte, error) {
	switch req.Format {
	case FormatPDF:
		return renderPDF(req)
	case FormatDOCX:
		return renderDOCX(req)
	default:
		return nil, &InvalidFormatError{Format: req.Format}
	}
}

// Filename suggests a download filename for the document.
func Filename(name, format string) string {
	if name == "" {
		name = "Resume"
	}
	return fmt.Sprintf("%s_CV.%s", name, format)
}

// ContentType returns the MIME type for a supported format.
func ContentType(format string) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
