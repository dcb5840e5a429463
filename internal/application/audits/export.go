package audits

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/application/reports"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Report is a rendered export.
type Report struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	// URL is set once the report has been archived.
	URL string `json:"url,omitempty"`
}

// FullExport renders every finding of the run as a spreadsheet. A run
// without findings yields an empty Data and no error.
func (s *Service) FullExport(ctx context.Context, runID string) (Report, error) {
	_, sess, err := s.open(ctx, runID)
	if err != nil {
		return Report{}, err
	}
	findings, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return Report{}, err
	}
	data, err := reports.WriteFullExport(reports.FullRows(findings, s.weights(sess)))
	if err != nil {
		return Report{}, err
	}
	return Report{Filename: runID + "_full_report.xlsx", ContentType: ContentTypeXLSX, Data: data}, nil
}

// ActionableExport renders the run's No and Partial findings as a
// remediation document.
func (s *Service) ActionableExport(ctx context.Context, runID string) (Report, error) {
	if _, err := s.Store.GetRun(ctx, runID); err != nil {
		return Report{}, err
	}
	findings, err := s.Store.ListFindings(ctx, runID)
	if err != nil {
		return Report{}, err
	}
	data, err := reports.WriteActionableExport(reports.Actionable(runID, findings, s.now()))
	if err != nil {
		return Report{}, err
	}
	return Report{Filename: "remediation_report_" + runID + ".docx", ContentType: ContentTypeDOCX, Data: data}, nil
}

// ArchiveReport uploads r under <run_id>/<uuid>-<filename> and records the
// returned URL on it. Without an archive configured r is returned as is.
func (s *Service) ArchiveReport(ctx context.Context, runID string, r Report) (Report, error) {
	if s.Archive == nil || len(r.Data) == 0 {
		return r, nil
	}
	key := runID + "/" + uuid.NewString() + "-" + r.Filename
	url, err := s.Archive.PutReport(ctx, key, r.ContentType, r.Data)
	if err != nil {
		return r, err
	}
	r.URL = url
	s.log().Info("report archived", zap.String("run_id", runID), zap.String("key", key))
	return r, nil
}
