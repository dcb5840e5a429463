package audits

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

// NoDocument is the evidence for a custom question asked without files.
const NoDocument = "No document provided."

const (
	MinCustomWeight = 1
	MaxCustomWeight = 5
)

// ParseQuestionNumbers reads a comma-separated list of 1-based question
// numbers such as "3, 5, 12".
func ParseQuestionNumbers(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", audit.ErrQuestionNumber, part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, audit.ErrQuestionNumber
	}
	return out, nil
}

// ReanalyzeCommand re-runs selected questions with optional new evidence.
type ReanalyzeCommand struct {
	// Numbers index the run's active checklist, starting at 1.
	Numbers    []int
	Uploads    []evidence.Upload
	Repository string
}

// Reanalyze answers the selected questions again over the session's
// evidence plus the new documents, which win on a name clash. Only questions
// that already have a finding are re-run; their finding is updated in place.
// The run status is left untouched. It fails with audit.ErrRunBusy while an
// answering pass owns the run.
func (s *Service) Reanalyze(ctx context.Context, runID string, cmd ReanalyzeCommand) (Summary, error) {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	if len(cmd.Numbers) == 0 {
		return Summary{}, audit.ErrQuestionNumber
	}
	if !sess.begin() {
		return Summary{}, audit.ErrRunBusy
	}
	defer sess.end()

	extra, err := s.documentsFor(ctx, runID, cmd.Uploads, evidence.OriginRevision)
	if err != nil {
		return Summary{}, err
	}
	newDocs := make(map[string]string, len(extra))
	for _, d := range extra {
		newDocs[d.Name] = d.Text
	}
	docs := evidence.Merge(sess.documents(), newDocs)

	existing, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	latest := audit.Latest(existing)
	items := s.activeItems(run, sess)

	sum := Summary{RunID: runID, Outcomes: make([]Outcome, 0, len(cmd.Numbers))}
	for _, n := range cmd.Numbers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if n < 1 || n > len(items) {
			sum.add(s.skip(Outcome{Number: n, Documents: []string{}}, "question number out of range"))
			continue
		}
		it := items[n-1]
		f, ok := latest[it.Question]
		if !ok {
			s.log().Warn("reanalysis skipped, no initial result", zap.String("run_id", runID), zap.Int("number", n))
			sum.add(s.skip(Outcome{Number: n, Subject: it.Subject, Question: it.Question, Documents: []string{}}, "no initial result to update"))
			continue
		}
		out := s.answerItem(ctx, runID, n, it, docs, cmd.Repository, f)
		if out.finding != nil {
			latest[it.Question] = out.finding
		}
		sum.add(out)
	}
	s.log().Info("reanalysis finished", zap.String("run_id", runID), zap.Int("answered", sum.Answered), zap.Int("failed", sum.Failed))
	return sum, nil
}

// CustomQuestionCommand adds a question to a run.
type CustomQuestionCommand struct {
	Question string
	Weight   int
	Uploads  []evidence.Upload
}

// AddCustomQuestion appends a question to the run's active checklist,
// answers it from the supplied documents only and persists the finding.
// Nothing is added when answering or saving fails.
func (s *Service) AddCustomQuestion(ctx context.Context, runID string, cmd CustomQuestionCommand) (Outcome, error) {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return Outcome{}, err
	}

	question := strings.TrimSpace(cmd.Question)
	if question == "" {
		return Outcome{}, checklist.ErrEmptyQuestion
	}
	if cmd.Weight < MinCustomWeight || cmd.Weight > MaxCustomWeight {
		return Outcome{}, fmt.Errorf("%w: custom weight must be between %d and %d", checklist.ErrInvalidWeight, MinCustomWeight, MaxCustomWeight)
	}
	item := checklist.Item{
		Subject:  checklist.CustomSubject,
		Question: question,
		Weight:   cmd.Weight,
		Tags:     []checklist.Framework{checklist.FrameworkPCI, checklist.FrameworkCustom},
	}
	if _, err := s.catalog().WithCustom(append(sess.customItems(), item)...); err != nil {
		return Outcome{}, err
	}

	docs, err := s.documentsFor(ctx, runID, cmd.Uploads, evidence.OriginUpload)
	if err != nil {
		return Outcome{}, err
	}
	names := make([]string, 0, len(docs))
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
		parts = append(parts, evidence.Label(d.Name, d.Text))
	}
	text := NoDocument
	if len(parts) > 0 {
		text = strings.Join(parts, "\n\n")
	}

	qctx, cancel := context.WithTimeout(ctx, s.answerTimeout())
	defer cancel()
	verdict, err := s.Answerer.Answer(qctx, question, text)
	if err == nil {
		err = checkVerdict(verdict)
	}
	if err != nil {
		s.Metrics.IncrementQuestion(string(OutcomeFailed))
		return Outcome{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	// re-check under the lock; another request may have added the same text
	if _, err := s.catalog().WithCustom(append(append([]checklist.Item(nil), sess.custom...), item)...); err != nil {
		return Outcome{}, err
	}
	f, err := s.persist(ctx, runID, question, verdict, nil)
	if err != nil {
		return Outcome{}, err
	}
	sess.custom = append(sess.custom, item)
	s.Metrics.IncrementQuestion(string(OutcomeAnswered))
	s.log().Info("custom question answered", zap.String("run_id", run.ID), zap.String("question", question), zap.String("answer", string(f.Answer)))

	return Outcome{
		Number:      len(s.catalog().ForScope(run.Scope)) + len(sess.custom),
		Subject:     item.Subject,
		Question:    question,
		Status:      OutcomeAnswered,
		Answer:      f.Answer,
		Explanation: f.Explanation,
		Documents:   names,
		finding:     f,
	}, nil
}
