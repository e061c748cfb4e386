// Package converter turns uploaded office documents into plain text. The
// document format itself is not interpreted beyond what the external docx
// library exposes.
package converter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// TextExtractor converts a document on disk into plain text. Implementations
// return an error when the document cannot be converted; partial results are
// never returned.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// DocxExtractor extracts text from Microsoft Word (.docx) documents.
type DocxExtractor struct{}

// NewDocxExtractor creates a new DocxExtractor
func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

var _ TextExtractor = (*DocxExtractor)(nil)

// ExtractText reads the docx file at path and returns its text content with
// paragraph boundaries preserved as newlines.
func (e *DocxExtractor) ExtractText(path string) (string, error) {
	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read docx file: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()

	return documentXMLToText(content), nil
}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>`)
	lineBreakRe    = regexp.MustCompile(`<w:br[^>]*/?>`)
	tabRe          = regexp.MustCompile(`<w:tab[^>]*/?>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

var xmlEntityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// documentXMLToText flattens word/document.xml markup into plain text.
// Paragraph ends and explicit breaks become newlines, tabs become tabs, and
// every other tag is dropped.
func documentXMLToText(content string) string {
	text := paragraphEndRe.ReplaceAllString(content, "\n")
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = tabRe.ReplaceAllString(text, "\t")
	text = xmlTagRe.ReplaceAllString(text, "")
	text = xmlEntityReplacer.Replace(text)

	return strings.TrimSpace(text)
}
