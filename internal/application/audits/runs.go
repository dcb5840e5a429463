package audits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

// RunID derives a run id from a user-chosen name.
func RunID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// DefaultRunName builds <project>_<frameworks>_<YYYYMMDD>.
func DefaultRunName(project string, scope []checklist.Framework, at time.Time) string {
	checks := make([]string, len(scope))
	for i, f := range scope {
		checks[i] = string(f)
	}
	project = strings.ReplaceAll(strings.TrimSpace(project), " ", "_")
	if project == "" {
		project = "audit"
	}
	return project + "_" + strings.ToLower(strings.Join(checks, "_")) + "_" + at.Format("20060102")
}

// ScheduleRunCommand starts a run.
type ScheduleRunCommand struct {
	Project    string   `json:"project"`
	Frameworks []string `json:"frameworks"`
	Name       string   `json:"name,omitempty"`
}

// Frameworks lists the schedulable frameworks the catalog has questions
// for, in catalog order.
func (s *Service) Frameworks() []checklist.Framework {
	var out []checklist.Framework
	for _, f := range s.catalog().Frameworks() {
		for _, ok := range checklist.Schedulable {
			if f == ok {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// ParseScope validates framework names case-insensitively, keeping the given
// order and dropping repeats. A name must be one of checklist.Schedulable and
// tag at least one item of the catalog; GitHub and Custom never qualify.
func (s *Service) ParseScope(names []string) ([]checklist.Framework, error) {
	cat := s.catalog()
	seen := map[checklist.Framework]bool{}
	var scope []checklist.Framework
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		var match checklist.Framework
		for _, f := range checklist.Schedulable {
			if strings.EqualFold(string(f), n) {
				match = f
				break
			}
		}
		if match == "" || !cat.Knows(match) {
			return nil, fmt.Errorf("%w: %s", audit.ErrUnknownFramework, n)
		}
		if !seen[match] {
			seen[match] = true
			scope = append(scope, match)
		}
	}
	if len(scope) == 0 {
		return nil, audit.ErrEmptyScope
	}
	return scope, nil
}

// ScheduleRun records a new in-progress run and opens its working session.
func (s *Service) ScheduleRun(ctx context.Context, cmd ScheduleRunCommand) (*audit.Run, error) {
	scope, err := s.ParseScope(cmd.Frameworks)
	if err != nil {
		return nil, err
	}
	now := s.now()
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name = DefaultRunName(cmd.Project, scope, now)
	}

	run := &audit.Run{
		ID:        RunID(name),
		Project:   strings.TrimSpace(cmd.Project),
		Scope:     scope,
		Status:    audit.RunInProgress,
		StartTime: now,
	}
	if err := s.Store.StartRun(ctx, run); err != nil {
		return nil, err
	}
	s.sessions.get(run.ID)
	s.log().Info("run started", zap.String("run_id", run.ID), zap.Any("scope", scope))
	return run, nil
}

// Run returns the run record.
func (s *Service) Run(ctx context.Context, runID string) (*audit.Run, error) {
	return s.Store.GetRun(ctx, runID)
}

// Status returns the run's lifecycle status.
func (s *Service) Status(ctx context.Context, runID string) (audit.RunStatus, error) {
	run, err := s.Store.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	return run.Status, nil
}

// Scope returns the frameworks the run was scheduled with.
func (s *Service) Scope(ctx context.Context, runID string) ([]checklist.Framework, error) {
	run, err := s.Store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return run.Scope, nil
}

// Complete moves the run to completed. Completing twice fails with
// audit.ErrRunCompleted.
func (s *Service) Complete(ctx context.Context, runID string) (*audit.Run, error) {
	run, err := s.Store.CompleteRun(ctx, runID, s.now())
	if err != nil {
		return nil, err
	}
	s.log().Info("run completed", zap.String("run_id", runID))
	return run, nil
}

// ListRuns returns run ids, most recently started first.
func (s *Service) ListRuns(ctx context.Context) ([]string, error) {
	return s.Store.ListRunIDs(ctx)
}

func ignoreCompleted(err error) error {
	if errors.Is(err, audit.ErrRunCompleted) {
		return nil
	}
	return err
}
