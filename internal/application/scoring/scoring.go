package scoring

import (
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// Result is the weighted compliance score of one framework.
type Result struct {
	Achieved   float64 `json:"achieved"`
	Max        float64 `json:"max"`
	Percentage float64 `json:"percentage"`
}

// Counts tallies resolved answers for one framework.
type Counts struct {
	Yes     int `json:"Yes"`
	No      int `json:"No"`
	Partial int `json:"Partial"`
}

// Total returns Yes+No+Partial.
func (c Counts) Total() int { return c.Yes + c.No + c.Partial }

// Drafts holds unsaved answer edits keyed by question. Scoring prefers a
// draft over the persisted finding.
type Drafts map[string]audit.Answer

// Multiplier maps an answer to its share of the question weight.
func Multiplier(a audit.Answer) float64 {
	switch a {
	case audit.AnswerYes:
		return 1.0
	case audit.AnswerPartial:
		return 0.5
	default:
		return 0.0
	}
}

// Resolve returns the current answer for question: draft, then persisted
// finding, then ok=false for unanswered.
func Resolve(question string, findings map[string]*audit.Finding, drafts Drafts) (audit.Answer, bool) {
	if a, ok := drafts[question]; ok {
		return a, true
	}
	if f, ok := findings[question]; ok && f != nil {
		return f.Answer, true
	}
	return "", false
}

// Score computes a Result per framework. Items answered N/A are left out of
// both sums; unanswered items count toward Max with nothing achieved.
func Score(findings map[string]*audit.Finding, items []checklist.Item, frameworks []checklist.Framework, drafts Drafts) map[checklist.Framework]Result {
	out := make(map[checklist.Framework]Result, len(frameworks))
	for _, fw := range frameworks {
		var r Result
		for _, it := range items {
			if !it.HasTag(fw) {
				continue
			}
			answer, _ := Resolve(it.Question, findings, drafts)
			if answer == audit.AnswerNA {
				continue
			}
			w := float64(it.Weight)
			r.Max += w
			r.Achieved += w * Multiplier(answer)
		}
		if r.Max > 0 {
			r.Percentage = r.Achieved / r.Max * 100
		}
		out[fw] = r
	}
	return out
}

// CountAnswers tallies Yes/No/Partial among items tagged fw.
func CountAnswers(findings map[string]*audit.Finding, items []checklist.Item, fw checklist.Framework, drafts Drafts) Counts {
	var c Counts
	for _, it := range items {
		if !it.HasTag(fw) {
			continue
		}
		a, _ := Resolve(it.Question, findings, drafts)
		switch a {
		case audit.AnswerYes:
			c.Yes++
		case audit.AnswerNo:
			c.No++
		case audit.AnswerPartial:
			c.Partial++
		}
	}
	return c
}
