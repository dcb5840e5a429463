// Package extract reads plain text out of PDF and DOCX evidence files.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"

	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

// Extractor implements evidence.Extractor. Unreadable files never fail the
// batch: their text becomes an inline error message.
type Extractor struct{}

var _ evidence.Extractor = Extractor{}

func (Extractor) Extract(name string, data []byte) string {
	switch l := strings.ToLower(name); {
	case strings.HasSuffix(l, ".pdf"):
		text, err := PDF(data)
		if err != nil {
			return "Error reading PDF: " + err.Error()
		}
		return text
	case strings.HasSuffix(l, ".docx"):
		text, err := DOCX(data)
		if err != nil {
			return "Error reading DOCX: " + err.Error()
		}
		return text
	default:
		return "Unsupported file type: " + name
	}
}

// PDF concatenates the text of every page.
func PDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		t, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(t)
	}
	return b.String(), nil
}

// DOCX returns the body of the document, one paragraph or table per line.
func DOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(doc.Document.Body.Items))
	for _, it := range doc.Document.Body.Items {
		switch o := it.(type) {
		case *docx.Paragraph:
			lines = append(lines, o.String())
		case *docx.Table:
			lines = append(lines, o.String())
		}
	}
	return strings.Join(lines, "\n"), nil
}
