package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText([]byte("plain text"), "text/plain", "resume.txt")
	require.Error(t, err)

	typeErr, ok := err.(*UnsupportedTypeError)
	require.True(t, ok, "error should be UnsupportedTypeError")
	assert.Equal(t, "resume.txt", typeErr.Filename)
	assert.Contains(t, typeErr.Error(), "text/plain")
}

func TestExtractText_DOCX(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Experienced backend engineer.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Go, PostgreSQL, </w:t></w:r><w:r><w:t>distributed systems.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := ExtractText(buildDOCX(t, doc), TypeDOCX, "resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "Experienced backend engineer.\nGo, PostgreSQL, distributed systems.", text)
}

func TestExtractText_DOCXEmpty(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p></w:p></w:body>
</w:document>`

	_, err := ExtractText(buildDOCX(t, doc), TypeDOCX, "empty.docx")
	require.Error(t, err)

	extractErr, ok := err.(*ExtractionError)
	require.True(t, ok, "error should be ExtractionError")
	assert.Contains(t, extractErr.Error(), "no text found")
}

func TestExtractText_DOCXMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = ExtractText(buf.Bytes(), TypeDOCX, "broken.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf at all"), TypePDF, "resume.pdf")
	require.Error(t, err)

	extractErr, ok := err.(*ExtractionError)
	require.True(t, ok, "error should be ExtractionError")
	assert.Equal(t, "resume.pdf", extractErr.Filename)
}
