package audits

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/application/matching"
	"github.com/bryanwahyu/auditronaut/internal/domain/ai"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// NoRepository is the evidence given for code-repository questions when the
// run has no repository configured.
const NoRepository = "The code repository was not configured for this audit run, so this question cannot be answered."

// OutcomeStatus is what happened to one question in a pass.
type OutcomeStatus string

const (
	OutcomeAnswered OutcomeStatus = "answered"
	OutcomeFailed   OutcomeStatus = "failed"
	OutcomeSkipped  OutcomeStatus = "skipped"
)

// Outcome reports one processed question.
type Outcome struct {
	Number      int           `json:"number"`
	Subject     string        `json:"subject"`
	Question    string        `json:"question"`
	Status      OutcomeStatus `json:"status"`
	Answer      audit.Answer  `json:"answer,omitempty"`
	Explanation string        `json:"explanation,omitempty"`
	Documents   []string      `json:"documents"`
	Error       string        `json:"error,omitempty"`

	finding *audit.Finding
}

// Summary aggregates the outcomes of a pass over the checklist.
type Summary struct {
	RunID    string    `json:"run_id"`
	Answered int       `json:"answered"`
	Failed   int       `json:"failed"`
	Skipped  int       `json:"skipped"`
	Outcomes []Outcome `json:"outcomes"`
}

func (sum *Summary) add(o Outcome) {
	switch o.Status {
	case OutcomeAnswered:
		sum.Answered++
	case OutcomeFailed:
		sum.Failed++
	case OutcomeSkipped:
		sum.Skipped++
	}
	sum.Outcomes = append(sum.Outcomes, o)
}

// ExecuteCommand starts the answering loop of a run.
type ExecuteCommand struct {
	// Repository is "owner/name" for code-repository questions; empty means none.
	Repository string `json:"repository,omitempty"`
}

// Progress receives each outcome as soon as the question is done.
type Progress func(Outcome)

// Execute answers every question of the run's scope in checklist order, one
// at a time. A failing question is reported and skipped; the loop goes on and
// the run is completed at the end. Cancelling ctx stops the loop early,
// keeping what was already persisted and leaving the run in progress.
// Only one pass may own a run at a time; a second one fails with
// audit.ErrRunBusy.
func (s *Service) Execute(ctx context.Context, runID string, cmd ExecuteCommand, progress Progress) (Summary, error) {
	run, sess, err := s.claim(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	defer sess.end()
	return s.execute(ctx, run, sess, cmd, progress)
}

// StartExecute claims the run and answers it on a background goroutine
// detached from ctx. Validation and the busy check happen before it
// returns; done, if set, receives the result.
func (s *Service) StartExecute(ctx context.Context, runID string, cmd ExecuteCommand, done func(Summary, error)) error {
	run, sess, err := s.claim(ctx, runID)
	if err != nil {
		return err
	}
	go func() {
		defer sess.end()
		sum, err := s.execute(context.Background(), run, sess, cmd, nil)
		if done != nil {
			done(sum, err)
		}
	}()
	return nil
}

// claim opens an in-progress run and marks it as being answered.
func (s *Service) claim(ctx context.Context, runID string) (*audit.Run, *session, error) {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	if run.Status == audit.RunCompleted {
		return nil, nil, audit.ErrRunCompleted
	}
	if !sess.begin() {
		return nil, nil, audit.ErrRunBusy
	}
	return run, sess, nil
}

func (s *Service) execute(ctx context.Context, run *audit.Run, sess *session, cmd ExecuteCommand, progress Progress) (Summary, error) {
	runID := run.ID
	existing, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	latest := audit.Latest(existing)
	docs := sess.documents()
	items := s.catalog().ForScope(run.Scope)

	sum := Summary{RunID: runID, Outcomes: make([]Outcome, 0, len(items))}
	lastSubject := ""
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			s.log().Warn("audit loop cancelled", zap.String("run_id", runID), zap.Int("processed", i))
			return sum, err
		}
		if it.Subject != lastSubject {
			s.log().Info("audit subject", zap.String("run_id", runID), zap.String("subject", it.Subject))
			lastSubject = it.Subject
		}

		out := s.answerItem(ctx, runID, i+1, it, docs, cmd.Repository, latest[it.Question])
		if out.finding != nil {
			latest[it.Question] = out.finding
		}
		sum.add(out)
		if progress != nil {
			progress(out)
		}
	}

	if _, err := s.Store.CompleteRun(ctx, runID, s.now()); ignoreCompleted(err) != nil {
		return sum, err
	}
	s.log().Info("audit loop finished",
		zap.String("run_id", runID),
		zap.Int("answered", sum.Answered),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

// answerItem gathers evidence for one question, asks the answerer and
// persists the verdict, all under the per-question timeout. It never returns
// an error: failures become a failed outcome.
func (s *Service) answerItem(ctx context.Context, runID string, number int, it checklist.Item, docs map[string]string, repository string, existing *audit.Finding) Outcome {
	out := Outcome{Number: number, Subject: it.Subject, Question: it.Question, Documents: []string{}}
	logger := s.log().With(zap.String("run_id", runID), zap.Int("number", number), zap.String("question", it.Question))

	qctx, cancel := context.WithTimeout(ctx, s.answerTimeout())
	defer cancel()

	start := time.Now()
	text, names, err := s.gather(qctx, it, docs, repository)
	if err != nil {
		return s.fail(logger, out, "evidence unavailable", err)
	}
	out.Documents = names

	verdict, err := s.Answerer.Answer(qctx, it.Question, text)
	s.Metrics.ObserveAnswerLatency(time.Since(start))
	if err == nil {
		err = checkVerdict(verdict)
	}
	if err != nil {
		return s.fail(logger, out, "answer failed", err)
	}

	f, err := s.persist(ctx, runID, it.Question, verdict, existing)
	if err != nil {
		return s.fail(logger, out, "finding not saved", err)
	}

	out.Status = OutcomeAnswered
	out.Answer = f.Answer
	out.Explanation = f.Explanation
	out.finding = f
	s.Metrics.IncrementQuestion(string(OutcomeAnswered))
	logger.Debug("question answered", zap.String("answer", string(f.Answer)), zap.Strings("documents", names))
	return out
}

func checkVerdict(v ai.Verdict) error {
	if !v.Answer.Valid() {
		return fmt.Errorf("%w: answer %q", ai.ErrMalformedVerdict, v.Answer)
	}
	return nil
}

func (s *Service) fail(logger *zap.Logger, out Outcome, msg string, err error) Outcome {
	out.Status = OutcomeFailed
	out.Error = err.Error()
	s.Metrics.IncrementQuestion(string(OutcomeFailed))
	logger.Warn(msg, zap.Error(err))
	return out
}

func (s *Service) skip(out Outcome, reason string) Outcome {
	out.Status = OutcomeSkipped
	out.Error = reason
	s.Metrics.IncrementQuestion(string(OutcomeSkipped))
	return out
}

// gather builds the evidence text for a question. Code-repository questions
// read their keywords as file paths; every other question is matched
// against the document names.
func (s *Service) gather(ctx context.Context, it checklist.Item, docs map[string]string, repository string) (string, []string, error) {
	if it.EvidenceSource() == checklist.SourceCodeRepository {
		if repository == "" || s.Code == nil {
			return NoRepository, []string{}, nil
		}
		fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout())
		defer cancel()
		text, err := s.Code.FetchFiles(fctx, repository, it.Keywords)
		if err != nil {
			return "", nil, err
		}
		return text, append([]string{}, it.Keywords...), nil
	}

	names := s.matcher().Match(it.Keywords, docs)
	return matching.Context(names, docs), names, nil
}

// persist records a verdict, updating the question's current finding when
// there is one so a pass never submits a question twice.
func (s *Service) persist(ctx context.Context, runID, question string, v ai.Verdict, existing *audit.Finding) (*audit.Finding, error) {
	if existing != nil {
		f, err := s.Store.UpdateFinding(ctx, existing.ID, v.Answer, v.Explanation)
		if err != nil {
			return nil, err
		}
		s.Metrics.IncrementFinding("update")
		return f, nil
	}

	f := &audit.Finding{
		RunID:       runID,
		Question:    question,
		Answer:      v.Answer,
		Explanation: v.Explanation,
		Timestamp:   s.now(),
	}
	if err := s.Store.SubmitFinding(ctx, f); err != nil {
		return nil, err
	}
	s.Metrics.IncrementFinding("submit")
	return f, nil
}
