package ai

//go:generate mockgen -source=port.go -destination=mocks/mocks.go -package=mocks Answerer

import (
	"context"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

// Verdict is the structured answer to one checklist question.
type Verdict struct {
	Answer      audit.Answer `json:"answer"`
	Explanation string       `json:"explanation"`
}

// Answerer answers a question from the supplied evidence text.
type Answerer interface {
	Answer(ctx context.Context, question, evidence string) (Verdict, error)
}
