package audits

import (
	"context"

	"github.com/bryanwahyu/auditronaut/internal/application/scoring"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// FrameworkScore is one framework's row on the dashboard.
type FrameworkScore struct {
	Framework checklist.Framework `json:"framework"`
	scoring.Result
}

// Scores computes the weighted compliance score of each framework in the
// run's scope, plus Custom once a custom question has a finding. Frameworks
// with nothing to score are left out. Scores are computed on every call.
func (s *Service) Scores(ctx context.Context, runID string) ([]FrameworkScore, error) {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return nil, err
	}
	findings, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return nil, err
	}
	latest := audit.Latest(findings)

	frameworks := append([]checklist.Framework(nil), run.Scope...)
	for _, it := range sess.customItems() {
		if _, ok := latest[it.Question]; ok {
			frameworks = append(frameworks, checklist.FrameworkCustom)
			break
		}
	}

	results := scoring.Score(latest, s.activeItems(run, sess), frameworks, sess.draftsCopy())
	out := make([]FrameworkScore, 0, len(frameworks))
	for _, f := range frameworks {
		if r := results[f]; r.Max > 0 {
			out = append(out, FrameworkScore{Framework: f, Result: r})
		}
	}
	return out, nil
}

// AnswerCounts tallies Yes, No and Partial for one framework of the run.
func (s *Service) AnswerCounts(ctx context.Context, runID string, framework checklist.Framework) (scoring.Counts, error) {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return scoring.Counts{}, err
	}
	findings, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return scoring.Counts{}, err
	}
	return scoring.CountAnswers(audit.Latest(findings), s.activeItems(run, sess), framework, sess.draftsCopy()), nil
}
