package reports

import (
	"time"

	"github.com/bryanwahyu/auditronaut/internal/application/scoring"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

// WeightFunc resolves a question's checklist weight, 0 when unknown.
type WeightFunc func(question string) int

// Row is one line of the full export.
type Row struct {
	Question    string       `json:"question"`
	Weight      int          `json:"weight"`
	Answer      audit.Answer `json:"answer"`
	Score       float64      `json:"score"`
	Explanation string       `json:"explanation"`
	Timestamp   time.Time    `json:"timestamp"`
}

// FullRows builds one row per finding, keeping the stored order.
func FullRows(findings []*audit.Finding, weight WeightFunc) []Row {
	rows := make([]Row, 0, len(findings))
	for _, f := range findings {
		w := 0
		if weight != nil {
			w = weight(f.Question)
		}
		rows = append(rows, Row{
			Question:    f.Question,
			Weight:      w,
			Answer:      f.Answer,
			Score:       float64(w) * scoring.Multiplier(f.Answer),
			Explanation: f.Explanation,
			Timestamp:   f.Timestamp,
		})
	}
	return rows
}

// Block is one actionable finding in the narrative export.
type Block struct {
	Question    string       `json:"question"`
	Answer      audit.Answer `json:"answer"`
	Explanation string       `json:"explanation"`
}

// Narrative is the actionable-items report before rendering.
type Narrative struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Blocks      []Block   `json:"blocks"`
}

// NoActionable is emitted instead of an empty list of blocks.
const NoActionable = "No actionable findings were identified for this audit run."

// Actionable keeps the No and Partial findings, in stored order.
func Actionable(runID string, findings []*audit.Finding, now time.Time) Narrative {
	n := Narrative{
		Title:       "Audit Remediation Report for: " + runID,
		GeneratedAt: now,
		Blocks:      []Block{},
	}
	for _, f := range findings {
		if f.Answer.Actionable() {
			n.Blocks = append(n.Blocks, Block{Question: f.Question, Answer: f.Answer, Explanation: f.Explanation})
		}
	}
	return n
}

// Lines renders the narrative as plain paragraphs, the layout shared by
// every output format.
func (n Narrative) Lines() []Line {
	lines := []Line{
		{Style: StyleTitle, Text: n.Title},
		{Text: "Generated on " + n.GeneratedAt.Format("2006-01-02 15:04:05") + ". This report lists items requiring action."},
	}
	if len(n.Blocks) == 0 {
		return append(lines, Line{Text: NoActionable})
	}
	lines = append(lines, Line{Style: StyleHeading, Text: "Actionable Findings"})
	for _, b := range n.Blocks {
		lines = append(lines,
			Line{Label: "Question: ", Text: b.Question},
			Line{Label: "Finding: ", Text: string(b.Answer)},
			Line{Label: "Explanation: ", Text: b.Explanation},
			Line{Text: "---"},
		)
	}
	return lines
}

// LineStyle selects heading levels.
type LineStyle int

const (
	StyleBody LineStyle = iota
	StyleTitle
	StyleHeading
)

// Line is one paragraph; Label is rendered bold in front of Text.
type Line struct {
	Style LineStyle
	Label string
	Text  string
}
