package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func TestExtractParagraphs(t *testing.T) {
	e := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
</w:body>
</w:document>`

	outcome := e.Extract(context.Background(), createTestDOCX(docXML), docxMediaType, "doc.docx")

	require.Equal(t, domain.ExtractionOK, outcome.Status)
	assert.Contains(t, outcome.Text, "First paragraph")
	assert.Contains(t, outcome.Text, "Second paragraph")
}

func TestExtractTableCells(t *testing.T) {
	e := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Name</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>Amount</w:t></w:r></w:p></w:tc>
</w:tr>
</w:tbl>
</w:body>
</w:document>`

	outcome := e.Extract(context.Background(), createTestDOCX(docXML), docxMediaType, "table.docx")

	require.Equal(t, domain.ExtractionOK, outcome.Status)
	assert.Contains(t, outcome.Text, "Name")
	assert.Contains(t, outcome.Text, "Amount")
}

func TestExtractEmptyDocumentFails(t *testing.T) {
	e := New()

	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body></w:body>
</w:document>`

	outcome := e.Extract(context.Background(), createTestDOCX(docXML), docxMediaType, "empty.docx")

	assert.Equal(t, domain.ExtractionFailed, outcome.Status)
}

func TestExtractNotAZipFails(t *testing.T) {
	e := New()

	outcome := e.Extract(context.Background(), []byte("plainly not a zip"), docxMediaType, "bad.docx")

	assert.Equal(t, domain.ExtractionFailed, outcome.Status)
	assert.Equal(t, "docx", outcome.Strategy)
}
