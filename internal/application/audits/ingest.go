package audits

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
)

type pending struct {
	upload evidence.Upload
	origin evidence.Origin
}

// expand flattens uploads into supported documents: zip entries are pulled
// out of their archive, unsupported files are dropped.
func (s *Service) expand(runID string, uploads []evidence.Upload) []pending {
	var out []pending
	for _, u := range uploads {
		switch {
		case evidence.IsArchive(u.Name):
			entries, err := evidence.ExpandArchive(u.Data)
			if err != nil {
				s.log().Warn("archive skipped", zap.String("run_id", runID), zap.String("document", u.Name), zap.Error(err))
				continue
			}
			for _, e := range entries {
				out = append(out, pending{upload: e, origin: evidence.OriginArchive})
			}
		case evidence.IsSupported(u.Name):
			out = append(out, pending{upload: u, origin: evidence.OriginUpload})
		default:
			s.log().Debug("unsupported file ignored", zap.String("run_id", runID), zap.String("document", u.Name))
		}
	}
	return out
}

// extract turns pending files into documents in parallel, keeping input order.
func (s *Service) extract(ctx context.Context, files []pending) ([]evidence.Document, error) {
	docs := make([]evidence.Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.extractWorkers())
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs[i] = evidence.Document{
				Name:   f.upload.Name,
				Text:   s.Extractor.Extract(f.upload.Name, f.upload.Data),
				Origin: f.origin,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Ingest extracts uploaded files into the run's evidence pool and returns
// the names they were stored under. Colliding names get a source prefix.
func (s *Service) Ingest(ctx context.Context, runID string, uploads []evidence.Upload) ([]string, error) {
	_, sess, err := s.open(ctx, runID)
	if err != nil {
		return nil, err
	}

	docs, err := s.extract(ctx, s.expand(runID, uploads))
	if err != nil {
		return nil, err
	}
	stored := sess.add(docs)

	perOrigin := map[evidence.Origin]int{}
	for _, d := range docs {
		perOrigin[d.Origin]++
	}
	for o, n := range perOrigin {
		s.Metrics.AddDocuments(string(o), n)
	}
	s.log().Info("evidence ingested", zap.String("run_id", runID), zap.Int("documents", len(stored)))
	return stored, nil
}

// FetchShare pulls the supported documents under folder of the file share
// into the run's evidence pool.
func (s *Service) FetchShare(ctx context.Context, runID, folder string) ([]string, error) {
	_, sess, err := s.open(ctx, runID)
	if err != nil {
		return nil, err
	}
	if s.Share == nil {
		return nil, fmt.Errorf("%w: file share not configured", evidence.ErrSourceUnavailable)
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout())
	defer cancel()
	texts, err := s.Share.FetchFolder(fctx, folder)
	if err != nil {
		return nil, err
	}

	docs := make([]evidence.Document, 0, len(texts))
	for _, name := range evidence.SortedNames(texts) {
		docs = append(docs, evidence.Document{Name: name, Text: texts[name], Origin: evidence.OriginFileShare})
	}
	stored := sess.add(docs)
	s.Metrics.AddDocuments(string(evidence.OriginFileShare), len(stored))
	s.log().Info("file share fetched", zap.String("run_id", runID), zap.String("folder", folder), zap.Int("documents", len(stored)))
	return stored, nil
}

// Evidence lists the run's document names in ingestion order.
func (s *Service) Evidence(ctx context.Context, runID string) ([]string, error) {
	_, sess, err := s.open(ctx, runID)
	if err != nil {
		return nil, err
	}
	return sess.names(), nil
}

// documentsFor extracts ad-hoc uploads without adding them to the pool,
// tagging each document with origin.
func (s *Service) documentsFor(ctx context.Context, runID string, uploads []evidence.Upload, origin evidence.Origin) ([]evidence.Document, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	docs, err := s.extract(ctx, s.expand(runID, uploads))
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Origin = origin
	}
	s.Metrics.AddDocuments(string(origin), len(docs))
	return docs, nil
}
