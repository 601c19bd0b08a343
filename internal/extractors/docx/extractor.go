// Package docx extracts text from Word-processor documents (OOXML).
// It pulls paragraph and table-cell text straight out of the document
// part; there is no OCR fallback for image-only content in this
// category.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// MediaTypes returns the media types this strategy handles.
func (e *Extractor) MediaTypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

// Extract opens the bytes as a ZIP archive and parses
// word/document.xml for paragraph and table-cell text.
func (e *Extractor) Extract(_ context.Context, data []byte, _, _ string) domain.ExtractionOutcome {
	failed := domain.ExtractionOutcome{
		Status:   domain.ExtractionFailed,
		Strategy: "docx",
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return failed
	}

	content, err := readDocumentPart(reader)
	if err != nil || content == nil {
		return failed
	}

	text := strings.TrimSpace(parseDocumentXML(content))
	if text == "" {
		return failed
	}

	return domain.ExtractionOutcome{
		Status:   domain.ExtractionOK,
		Text:     text,
		Strategy: "docx",
	}
}

// readDocumentPart returns the contents of word/document.xml, or nil
// when the archive has no such entry.
func readDocumentPart(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return content, nil
	}
	return nil, nil
}

// documentXML mirrors the parts of word/document.xml we care about:
// top-level paragraphs plus tables with their cell paragraphs.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
		Tables     []table     `xml:"tbl"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type table struct {
	Rows []tableRow `xml:"tr"`
}

type tableRow struct {
	Cells []tableCell `xml:"tc"`
}

type tableCell struct {
	Paragraphs []paragraph `xml:"p"`
}

// parseDocumentXML flattens paragraphs then table cells into text.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for _, para := range doc.Body.Paragraphs {
		writeParagraph(&result, para)
	}

	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			for _, cell := range row.Cells {
				for _, para := range cell.Paragraphs {
					writeCell(&result, para)
				}
			}
			result.WriteString("\n")
		}
	}

	return result.String()
}

func writeParagraph(b *strings.Builder, para paragraph) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	for _, r := range para.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
}

func writeCell(b *strings.Builder, para paragraph) {
	for _, r := range para.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	b.WriteString(" ")
}
