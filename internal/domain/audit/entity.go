package audit

import (
	"strings"
	"time"

	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// RunStatus enum
type RunStatus string

const (
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
)

// Answer enum
type Answer string

const (
	AnswerYes     Answer = "Yes"
	AnswerNo      Answer = "No"
	AnswerPartial Answer = "Partial"
	AnswerNA      Answer = "N/A"
)

// ParseAnswer accepts any of the four answers, case-insensitively.
func ParseAnswer(s string) (Answer, error) {
	for _, a := range []Answer{AnswerYes, AnswerNo, AnswerPartial, AnswerNA} {
		if strings.EqualFold(strings.TrimSpace(s), string(a)) {
			return a, nil
		}
	}
	return "", ErrInvalidAnswer
}

// Valid reports whether a is one of the four known answers.
func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerNo, AnswerPartial, AnswerNA:
		return true
	}
	return false
}

// Actionable reports whether the answer needs remediation.
func (a Answer) Actionable() bool {
	return a == AnswerNo || a == AnswerPartial
}

// Project groups runs under an organization.
type Project struct {
	ID           int64  `json:"id"`
	Organization string `json:"organization"`
	Name         string `json:"name"`
}

// Run is one audit execution against a project and a framework scope.
type Run struct {
	ID        string                `json:"run_id"`
	Project   string                `json:"project,omitempty"`
	Scope     []checklist.Framework `json:"scope"`
	Status    RunStatus             `json:"status"`
	StartTime time.Time             `json:"start_time"`
	EndTime   *time.Time            `json:"end_time,omitempty"`
}

// Finding is the recorded answer for one question within one run.
type Finding struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Question    string    `json:"question"`
	Answer      Answer    `json:"answer"`
	Explanation string    `json:"explanation"`
	Timestamp   time.Time `json:"timestamp"`
}

// Latest indexes findings by question, later entries winning.
func Latest(findings []*Finding) map[string]*Finding {
	out := make(map[string]*Finding, len(findings))
	for _, f := range findings {
		out[f.Question] = f
	}
	return out
}
