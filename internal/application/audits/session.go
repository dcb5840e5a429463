package audits

import (
	"sync"

	"github.com/bryanwahyu/auditronaut/internal/application/scoring"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

// session is the in-process working state of one run: its evidence pool,
// custom questions and unsaved answer edits. It does not survive a restart.
type session struct {
	mu     sync.Mutex
	pool   *evidence.Pool
	custom []checklist.Item
	drafts scoring.Drafts
	// set while an answering pass owns the run
	running bool
}

func newSession() *session {
	return &session{pool: evidence.NewPool(), drafts: scoring.Drafts{}}
}

// documents snapshots the pool's name → text mapping.
func (ss *session) documents() map[string]string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.pool.Texts()
}

func (ss *session) names() []string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.pool.Names()
}

func (ss *session) add(docs []evidence.Document) []string {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	stored := make([]string, 0, len(docs))
	for _, d := range docs {
		stored = append(stored, ss.pool.Add(d))
	}
	return stored
}

// begin claims the run for one answering pass; false if another holds it.
func (ss *session) begin() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.running {
		return false
	}
	ss.running = true
	return true
}

func (ss *session) end() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.running = false
}

func (ss *session) customItems() []checklist.Item {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return append([]checklist.Item(nil), ss.custom...)
}

func (ss *session) draftsCopy() scoring.Drafts {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	out := make(scoring.Drafts, len(ss.drafts))
	for q, a := range ss.drafts {
		out[q] = a
	}
	return out
}

func (ss *session) setDraft(question string, a audit.Answer) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.drafts[question] = a
}

func (ss *session) clearDraft(question string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.drafts, question)
}

// sessions is the registry of working sessions keyed by run id.
type sessions struct {
	mu sync.Mutex
	m  map[string]*session
}

func (r *sessions) get(runID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = map[string]*session{}
	}
	ss, ok := r.m[runID]
	if !ok {
		ss = newSession()
		r.m[runID] = ss
	}
	return ss
}

// peek returns the session only if one exists.
func (r *sessions) peek(runID string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ss, ok := r.m[runID]
	return ss, ok
}
