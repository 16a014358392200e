// Package docparse extracts plain text from uploaded resume and job
// description documents (pdf, docx, odt and plain text).
package docparse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedType is returned for document formats the parser does
	// not understand.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrEmptyDocument is returned when a document contains no content.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrUnreadable is returned when a document cannot be decoded, or when a
	// PDF yields almost no text (usually a scanned image).
	ErrUnreadable = errors.New("document is unreadable")
)

// PDFs with less extractable text than this are treated as scanned images.
const minPDFTextRunes = 50

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeODT  = "application/vnd.oasis.opendocument.text"
)

var collapseNewlines = regexp.MustCompile(`\n{3,}`)

// Extract decodes the document and returns its normalized plain text. The
// format is taken from the content type when recognized, otherwise from the
// filename extension.
func Extract(filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	var text string
	var err error

	switch kind(filename, contentType) {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDocx(data)
	case "odt":
		text, err = extractODT(data)
	case "txt":
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, filename, contentType)
	}
	if err != nil {
		return "", err
	}

	text = NormalizeText(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	return text, nil
}

// NormalizeText trims every line and collapses runs of blank lines, so
// downstream prompts see compact text regardless of the source format.
func NormalizeText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	joined := collapseNewlines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(joined)
}

func kind(filename, contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0])) {
	case mimePDF:
		return "pdf"
	case mimeDocx:
		return "docx"
	case mimeODT:
		return "odt"
	case "text/plain":
		return "txt"
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".odt":
		return "odt"
	case ".txt":
		return "txt"
	}

	return ""
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	text := builder.String()
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minPDFTextRunes {
		return "", fmt.Errorf("%w: pdf contains no extractable text, it may be scanned", ErrUnreadable)
	}

	return text, nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer doc.Close()

	return wordXMLText(doc.Editable().GetContent()), nil
}

// wordXMLText pulls the text runs out of a WordprocessingML document body,
// inserting a newline per paragraph.
func wordXMLText(content string) string {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var builder strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String()
}

func extractODT(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	for _, file := range archive.File {
		if file.Name != "content.xml" {
			continue
		}
		reader, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		defer reader.Close()
		return odtText(reader)
	}

	return "", fmt.Errorf("%w: odt archive has no content.xml", ErrUnreadable)
}

// odtText collects the character data of an OpenDocument content stream,
// inserting a newline after every paragraph and heading.
func odtText(reader io.Reader) (string, error) {
	decoder := xml.NewDecoder(reader)

	var builder strings.Builder
	depth := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				depth--
				builder.WriteString("\n")
			}
		case xml.CharData:
			if depth > 0 {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
