package reports

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// font sizes in half-points
var headingSize = map[LineStyle]string{StyleTitle: "32", StyleHeading: "26"}

// WriteActionableExport renders the narrative as a .docx document.
func WriteActionableExport(n Narrative) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	for _, l := range n.Lines() {
		p := doc.AddParagraph()
		if l.Label != "" {
			p.AddText(l.Label).Bold()
		}
		r := p.AddText(l.Text)
		if l.Style != StyleBody {
			r.Bold()
		}
		if size, ok := headingSize[l.Style]; ok {
			r.Size(size)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}
