package audits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// SubmitFindingCommand records a finding directly.
type SubmitFindingCommand struct {
	RunID       string     `json:"run_id"`
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	Explanation string     `json:"explanation"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// SubmitFinding stores a new finding for an existing run. It does not
// deduplicate: every call creates a finding.
func (s *Service) SubmitFinding(ctx context.Context, cmd SubmitFindingCommand) (*audit.Finding, error) {
	if _, err := s.Store.GetRun(ctx, cmd.RunID); err != nil {
		return nil, err
	}
	question := strings.TrimSpace(cmd.Question)
	if question == "" {
		return nil, checklist.ErrEmptyQuestion
	}
	answer, err := audit.ParseAnswer(cmd.Answer)
	if err != nil {
		return nil, err
	}
	ts := s.now()
	if cmd.Timestamp != nil {
		ts = cmd.Timestamp.UTC()
	}

	f := &audit.Finding{RunID: cmd.RunID, Question: question, Answer: answer, Explanation: cmd.Explanation, Timestamp: ts}
	if err := s.Store.SubmitFinding(ctx, f); err != nil {
		return nil, err
	}
	s.Metrics.IncrementFinding("submit")
	return f, nil
}

// UpdateFinding applies a manual edit. Any draft for the same question is
// dropped since the edit supersedes it.
func (s *Service) UpdateFinding(ctx context.Context, id int64, answer, explanation string) (*audit.Finding, error) {
	a, err := audit.ParseAnswer(answer)
	if err != nil {
		return nil, err
	}
	f, err := s.Store.UpdateFinding(ctx, id, a, explanation)
	if err != nil {
		return nil, err
	}
	if sess, ok := s.sessions.peek(f.RunID); ok {
		sess.clearDraft(f.Question)
	}
	s.Metrics.IncrementFinding("update")
	s.log().Info("finding updated", zap.Int64("finding_id", id), zap.String("run_id", f.RunID), zap.String("answer", string(a)))
	return f, nil
}

// GetFinding returns one finding.
func (s *Service) GetFinding(ctx context.Context, id int64) (*audit.Finding, error) {
	return s.Store.GetFinding(ctx, id)
}

// ListFindings returns findings in creation order; an empty runID lists all.
func (s *Service) ListFindings(ctx context.Context, runID string) ([]*audit.Finding, error) {
	return s.Store.ListFindings(ctx, runID)
}

// SetDraft overlays an unsaved answer on a question of the run's active
// checklist. Scores prefer drafts until they are cleared or saved.
func (s *Service) SetDraft(ctx context.Context, runID, question, answer string) error {
	run, sess, err := s.open(ctx, runID)
	if err != nil {
		return err
	}
	a, err := audit.ParseAnswer(answer)
	if err != nil {
		return err
	}
	if !contains(s.activeItems(run, sess), question) {
		return fmt.Errorf("%w: %q", checklist.ErrUnknownQuestion, question)
	}
	sess.setDraft(question, a)
	return nil
}

// ClearDraft drops the unsaved answer for question, if any.
func (s *Service) ClearDraft(ctx context.Context, runID, question string) error {
	_, sess, err := s.open(ctx, runID)
	if err != nil {
		return err
	}
	sess.clearDraft(question)
	return nil
}

func contains(items []checklist.Item, question string) bool {
	for _, it := range items {
		if it.Question == question {
			return true
		}
	}
	return false
}
