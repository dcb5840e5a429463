package extract

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/auditronaut/internal/application/reports"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

func TestDOCX(t *testing.T) {
	data, err := reports.WriteActionableExport(reports.Actionable("r1", []*audit.Finding{
		{Question: "Is a SOW signed?", Answer: audit.AnswerNo, Explanation: "A & B missing"},
	}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	text, err := DOCX(data)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Audit Remediation Report for: r1", lines[0])
	assert.Contains(t, lines, "Question: Is a SOW signed?")
	assert.Contains(t, lines, "Explanation: A & B missing")
}

func TestDOCXTables(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Incident response policy")
	tbl := doc.AddTable(1, 2, 0, nil)
	tbl.TableRows[0].TableCells[0].AddParagraph().AddText("Owner")
	tbl.TableRows[0].TableCells[1].AddParagraph().AddText("Security lead")
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)

	text, err := DOCX(buf.Bytes())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Incident response policy", lines[0])
	assert.Contains(t, text, "Owner")
	assert.Contains(t, text, "Security lead")
}

func TestExtractDegradesToInlineErrors(t *testing.T) {
	x := Extractor{}

	assert.True(t, strings.HasPrefix(x.Extract("broken.pdf", []byte("%PDF-nonsense")), "Error reading PDF: "))
	assert.True(t, strings.HasPrefix(x.Extract("broken.DOCX", []byte("not a zip")), "Error reading DOCX: "))
	assert.Equal(t, "Unsupported file type: notes.txt", x.Extract("notes.txt", nil))
}
