package render

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants, in points.
const (
	pdfMargin      = 50
	nameSize       = 24
	titleSize      = 14
	sectionSize    = 16
	entryTitleSize = 12
	bodySize       = 10
)

// renderPDF emits the resume as a single continuous page flow: centered
// contact header followed by the Professional Summary, Experience, Education
// and Skills sections in fixed order.
func renderPDF(req DocumentRequest) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Contact header.
	pdf.SetFont("Helvetica", "B", nameSize)
	pdf.CellFormat(0, nameSize+6, tr(orDefault(req.PersonalInfo.Name, defaultName)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", titleSize)
	pdf.CellFormat(0, titleSize+4, tr(orDefault(req.PersonalInfo.Title, defaultTitle)), "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.CellFormat(0, bodySize+2, tr(contactLine(req.PersonalInfo)), "", 1, "C", false, 0, "")

	// Professional Summary.
	sectionHeader(pdf, "Professional Summary")
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.MultiCell(0, bodySize+3, tr(orDefault(req.PersonalInfo.Summary, defaultSummary)), "", "L", false)

	// Experience, in input order.
	sectionHeader(pdf, "Experience")
	for _, exp := range req.Experiences {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", entryTitleSize)
		pdf.CellFormat(0, entryTitleSize+3, tr(orDefault(exp.Title, defaultJobTitle)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.CellFormat(0, bodySize+2, tr(experienceHeading(exp)), "", 1, "L", false, 0, "")
		pdf.MultiCell(0, bodySize+3, tr(orDefault(exp.Description, defaultDescription)), "", "L", false)
	}

	// Education, in input order.
	sectionHeader(pdf, "Education")
	for _, edu := range req.Education {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", entryTitleSize)
		pdf.CellFormat(0, entryTitleSize+3, tr(educationTitle(edu)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodySize)
		pdf.CellFormat(0, bodySize+2, tr(educationHeading(edu)), "", 1, "L", false, 0, "")
	}

	// Skills.
	sectionHeader(pdf, "Skills")
	pdf.SetFont("Helvetica", "", bodySize)
	pdf.MultiCell(0, bodySize+3, tr(orDefault(req.Skills, defaultSkills)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "U", sectionSize)
	pdf.CellFormat(0, sectionSize+4, title, "", 1, "L", false, 0, "")
}
