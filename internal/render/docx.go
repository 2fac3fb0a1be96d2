package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
)

// The DOCX encoder builds a declarative paragraph/run tree and serializes it
// into the OOXML container: a zip archive holding the content type manifest,
// the package relationships, and word/document.xml.

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Run sizes are in half-points.
const (
	docxNameSize       = "48"
	docxTitleSize      = "28"
	docxSectionSize    = "32"
	docxEntryTitleSize = "24"
	docxBodySize       = "20"
)

type docxDocument struct {
	XMLName   xml.Name `xml:"w:document"`
	Namespace string   `xml:"xmlns:w,attr"`
	Body      docxBody `xml:"w:body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"w:p"`
}

type docxParagraph struct {
	Props *docxParaProps `xml:"w:pPr,omitempty"`
	Runs  []docxRun      `xml:"w:r"`
}

type docxParaProps struct {
	Justification *docxVal `xml:"w:jc,omitempty"`
}

type docxRun struct {
	Props *docxRunProps `xml:"w:rPr,omitempty"`
	Text  docxText      `xml:"w:t"`
}

type docxRunProps struct {
	Bold      *docxEmpty `xml:"w:b,omitempty"`
	Underline *docxVal   `xml:"w:u,omitempty"`
	Size      *docxVal   `xml:"w:sz,omitempty"`
}

type docxEmpty struct{}

type docxVal struct {
	Val string `xml:"w:val,attr"`
}

type docxText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

// runStyle describes the styling attributes of a single text run.
type runStyle struct {
	size      string
	bold      bool
	underline bool
}

func newRun(text string, style runStyle) docxRun {
	props := &docxRunProps{}
	if style.bold {
		props.Bold = &docxEmpty{}
	}
	if style.underline {
		props.Underline = &docxVal{Val: "single"}
	}
	if style.size != "" {
		props.Size = &docxVal{Val: style.size}
	}
	return docxRun{
		Props: props,
		Text:  docxText{Space: "preserve", Value: text},
	}
}

func newParagraph(align string, runs ...docxRun) docxParagraph {
	p := docxParagraph{Runs: runs}
	if align != "" {
		p.Props = &docxParaProps{Justification: &docxVal{Val: align}}
	}
	return p
}

// renderDOCX emits the resume with the same section ordering and placeholder
// table as the PDF encoder, built from discrete styled runs.
func renderDOCX(req DocumentRequest) ([]byte, error) {
	var paragraphs []docxParagraph

	// Contact header.
	paragraphs = append(paragraphs,
		newParagraph("center", newRun(orDefault(req.PersonalInfo.Name, defaultName), runStyle{size: docxNameSize, bold: true})),
		newParagraph("center", newRun(orDefault(req.PersonalInfo.Title, defaultTitle), runStyle{size: docxTitleSize})),
		newParagraph("center", newRun(contactLine(req.PersonalInfo), runStyle{size: docxBodySize})),
	)

	// Professional Summary.
	paragraphs = append(paragraphs,
		docxSectionHeader("Professional Summary"),
		newParagraph("", newRun(orDefault(req.PersonalInfo.Summary, defaultSummary), runStyle{size: docxBodySize})),
	)

	// Experience, in input order.
	paragraphs = append(paragraphs, docxSectionHeader("Experience"))
	for _, exp := range req.Experiences {
		paragraphs = append(paragraphs,
			newParagraph("", newRun(orDefault(exp.Title, defaultJobTitle), runStyle{size: docxEntryTitleSize, bold: true})),
			newParagraph("", newRun(experienceHeading(exp), runStyle{size: docxBodySize})),
			newParagraph("", newRun(orDefault(exp.Description, defaultDescription), runStyle{size: docxBodySize})),
		)
	}

	// Education, in input order.
	paragraphs = append(paragraphs, docxSectionHeader("Education"))
	for _, edu := range req.Education {
		paragraphs = append(paragraphs,
			newParagraph("", newRun(educationTitle(edu), runStyle{size: docxEntryTitleSize, bold: true})),
			newParagraph("", newRun(educationHeading(edu), runStyle{size: docxBodySize})),
		)
	}

	// Skills.
	paragraphs = append(paragraphs,
		docxSectionHeader("Skills"),
		newParagraph("", newRun(orDefault(req.Skills, defaultSkills), runStyle{size: docxBodySize})),
	)

	doc := docxDocument{
		Namespace: wordMLNamespace,
		Body:      docxBody{Paragraphs: paragraphs},
	}

	documentXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, &RenderError{Message: "failed to serialize document tree", Cause: err}
	}

	return packDOCX(append([]byte(xml.Header), documentXML...))
}

func docxSectionHeader(title string) docxParagraph {
	return newParagraph("", newRun(title, runStyle{size: docxSectionSize, bold: true, underline: true}))
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const docxPackageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// packDOCX assembles the OOXML zip container around word/document.xml.
func packDOCX(documentXML []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxPackageRels)},
		{"word/document.xml", documentXML},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, &RenderError{Message: "failed to create archive entry " + part.name, Cause: err}
		}
		if _, err := f.Write(part.content); err != nil {
			return nil, &RenderError{Message: "failed to write archive entry " + part.name, Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &RenderError{Message: "failed to finalize archive", Cause: err}
	}
	return buf.Bytes(), nil
}
