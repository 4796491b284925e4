package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	hiremateErrors "hiremate/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Extract converts an uploaded resume file into plain text. Supported formats
// are PDF, DOCX and plain text, selected by file extension.
func Extract(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", hiremateErrors.NewValidationError(hiremateErrors.ErrCodeInvalidRequest,
			"Uploaded file is empty", nil)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".txt", ".md", "":
		return extractPlainText(data)
	default:
		return "", hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat,
			fmt.Sprintf("Unsupported file format: %s (supported: pdf, docx, txt)", filepath.Ext(filename)), nil)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat,
			"Failed to read PDF file", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}

	return normalize(textBuilder.String())
}

func extractDocxText(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat,
			"Failed to parse DOCX file", err)
	}
	defer doc.Close()

	return normalize(stripXMLTags(doc.Editable().GetContent()))
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat,
			"File is not valid UTF-8 text", nil)
	}
	return normalize(string(data))
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// stripXMLTags removes the WordprocessingML markup around the document text.
// Paragraph boundaries become newlines.
func stripXMLTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return xmlTagPattern.ReplaceAllString(content, "")
}

// normalize trims the extracted text and rejects files with no usable content
func normalize(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", hiremateErrors.NewFormatError(hiremateErrors.ErrCodeInvalidFormat,
			"No text content could be extracted from the file", nil)
	}
	return text, nil
}
