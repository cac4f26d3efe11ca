// Package ingestion extracts plain text from uploaded resume and
// job-description documents. Only PDF and DOCX uploads are accepted; the
// declared content type is checked before any bytes are parsed.
package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Declared MIME types accepted for uploads.
const (
	TypePDF  = "application/pdf"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractText extracts plain text from an uploaded document. declaredType is
// the content type the client declared for the upload; filename is used only
// for error reporting.
func ExtractText(data []byte, declaredType, filename string) (string, error) {
	switch declaredType {
	case TypePDF:
		return extractPDF(data, filename)
	case TypeDOCX:
		return extractDOCX(data, filename)
	default:
		return "", &UnsupportedTypeError{Filename: filename, DeclaredType: declaredType}
	}
}

func extractPDF(data []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to open PDF", Cause: err}
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to read PDF text", Cause: err}
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to read PDF text", Cause: err}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", &ExtractionError{Filename: filename, Message: "no text could be extracted from the PDF"}
	}
	return text, nil
}

// extractDOCX reads the word/document.xml entry of the DOCX zip container and
// collects the text runs, one line per paragraph.
func extractDOCX(data []byte, filename string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to open DOCX container", Cause: err}
	}

	var document *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", &ExtractionError{Filename: filename, Message: "DOCX container has no word/document.xml"}
	}

	rc, err := document.Open()
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to open document.xml", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	text, err := docxText(rc)
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "failed to parse document.xml", Cause: err}
	}
	if text == "" {
		return "", &ExtractionError{Filename: filename, Message: "no text found in the DOCX file"}
	}
	return text, nil
}

func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	var paragraph strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("xml decode: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				var run string
				if err := decoder.DecodeElement(&run, &el); err != nil {
					return "", fmt.Errorf("xml decode text run: %w", err)
				}
				paragraph.WriteString(run)
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				if line := strings.TrimSpace(paragraph.String()); line != "" {
					sb.WriteString(line)
					sb.WriteString("\n")
				}
				paragraph.Reset()
			}
		}
	}
	if line := strings.TrimSpace(paragraph.String()); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
