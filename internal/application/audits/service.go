package audits

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/application"
	"github.com/bryanwahyu/auditronaut/internal/application/matching"
	"github.com/bryanwahyu/auditronaut/internal/domain/ai"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
	"github.com/bryanwahyu/auditronaut/internal/logging"
	"github.com/bryanwahyu/auditronaut/internal/metrics"
)

const (
	DefaultAnswerTimeout  = 60 * time.Second
	DefaultFetchTimeout   = 30 * time.Second
	DefaultExtractWorkers = 4
)

// Options tunes the audit workflow.
type Options struct {
	AnswerTimeout       time.Duration
	FetchTimeout        time.Duration
	ExtractWorkers      int
	DefaultOrganization string
	DefaultProjects     []string
}

// Service implements the audit use-cases: projects, run lifecycle, evidence
// ingestion, the answering loop, reanalysis, dashboards and exports.
// Service is safe for concurrent use.
type Service struct {
	Store     audit.Store
	Answerer  ai.Answerer
	Catalog   *checklist.Catalog
	Matcher   *matching.Matcher
	Extractor evidence.Extractor

	// optional collaborators
	Share   evidence.FileShareFetcher
	Code    evidence.CodeRepositoryFetcher
	Archive audit.ReportArchive

	Metrics *metrics.Metrics
	Log     *zap.Logger
	Clock   application.Clock
	Options Options

	sessions sessions
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s *Service) log() *zap.Logger { return logging.OrNop(s.Log) }

func (s *Service) matcher() *matching.Matcher {
	if s.Matcher == nil {
		return matching.New(matching.DefaultThreshold)
	}
	return s.Matcher
}

func (s *Service) catalog() *checklist.Catalog {
	if s.Catalog == nil {
		return checklist.DefaultCatalog()
	}
	return s.Catalog
}

func (s *Service) answerTimeout() time.Duration {
	if s.Options.AnswerTimeout <= 0 {
		return DefaultAnswerTimeout
	}
	return s.Options.AnswerTimeout
}

func (s *Service) fetchTimeout() time.Duration {
	if s.Options.FetchTimeout <= 0 {
		return DefaultFetchTimeout
	}
	return s.Options.FetchTimeout
}

func (s *Service) extractWorkers() int {
	if s.Options.ExtractWorkers <= 0 {
		return DefaultExtractWorkers
	}
	return s.Options.ExtractWorkers
}

// open loads a run and its working session, creating the session on first use.
func (s *Service) open(ctx context.Context, runID string) (*audit.Run, *session, error) {
	run, err := s.Store.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	return run, s.sessions.get(run.ID), nil
}

// activeItems is the run's scoped checklist followed by its custom questions.
func (s *Service) activeItems(run *audit.Run, sess *session) []checklist.Item {
	items := s.catalog().ForScope(run.Scope)
	return append(items, sess.customItems()...)
}

// weights resolves weights over the base catalog plus the session's custom
// questions.
func (s *Service) weights(sess *session) func(string) int {
	custom := map[string]int{}
	for _, it := range sess.customItems() {
		custom[it.Question] = it.Weight
	}
	cat := s.catalog()
	return func(q string) int {
		if w, ok := custom[q]; ok {
			return w
		}
		if it, ok := cat.Lookup(q); ok {
			return it.Weight
		}
		return 0
	}
}
