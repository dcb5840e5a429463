// Package memory is a process-local audit.Store used by tests and by the
// "memory" database driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

type Store struct {
	mu       sync.RWMutex
	projects []*audit.Project
	runs     map[string]*audit.Run
	findings []*audit.Finding
	nextID   int64
}

var _ audit.Store = (*Store)(nil)

func New() *Store {
	return &Store{runs: map[string]*audit.Run{}}
}

func (s *Store) CreateProject(_ context.Context, p *audit.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.projects {
		if existing.Name == p.Name {
			return audit.ErrProjectExists
		}
	}
	p.ID = int64(len(s.projects) + 1)
	cp := *p
	s.projects = append(s.projects, &cp)
	return nil
}

func (s *Store) ListProjects(_ context.Context) ([]*audit.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*audit.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) StartRun(_ context.Context, r *audit.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[r.ID]; ok {
		return audit.ErrRunExists
	}
	s.runs[r.ID] = copyRun(r)
	return nil
}

func (s *Store) GetRun(_ context.Context, id string) (*audit.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, audit.ErrRunNotFound
	}
	return copyRun(r), nil
}

func (s *Store) CompleteRun(_ context.Context, id string, at time.Time) (*audit.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, audit.ErrRunNotFound
	}
	if r.Status == audit.RunCompleted {
		return nil, audit.ErrRunCompleted
	}
	r.Status = audit.RunCompleted
	end := at
	r.EndTime = &end
	return copyRun(r), nil
}

func (s *Store) ListRunIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]*audit.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].StartTime.Equal(runs[j].StartTime) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartTime.After(runs[j].StartTime)
	})
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids, nil
}

func (s *Store) SubmitFinding(_ context.Context, f *audit.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	cp := *f
	s.findings = append(s.findings, &cp)
	return nil
}

func (s *Store) UpdateFinding(_ context.Context, id int64, answer audit.Answer, explanation string) (*audit.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.findings {
		if f.ID == id {
			f.Answer = answer
			f.Explanation = explanation
			cp := *f
			return &cp, nil
		}
	}
	return nil, audit.ErrFindingNotFound
}

func (s *Store) GetFinding(_ context.Context, id int64) (*audit.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.findings {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, audit.ErrFindingNotFound
}

func (s *Store) ListFindings(_ context.Context, runID string) ([]*audit.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*audit.Finding{}
	for _, f := range s.findings {
		if runID == "" || f.RunID == runID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Ping satisfies the health check contract.
func (s *Store) Ping(context.Context) error { return nil }

func copyRun(r *audit.Run) *audit.Run {
	cp := *r
	cp.Scope = append([]checklist.Framework(nil), r.Scope...)
	if r.EndTime != nil {
		end := *r.EndTime
		cp.EndTime = &end
	}
	return &cp
}
