package audit

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Store

import (
	"context"
	"time"
)

// ProjectRepository persists projects.
type ProjectRepository interface {
	// CreateProject fails with ErrProjectExists when the name is taken.
	CreateProject(ctx context.Context, p *Project) error
	ListProjects(ctx context.Context) ([]*Project, error)
}

// RunRepository persists run lifecycle records.
type RunRepository interface {
	// StartRun fails with ErrRunExists when the id is taken.
	StartRun(ctx context.Context, r *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	// CompleteRun fails with ErrRunNotFound or ErrRunCompleted.
	CompleteRun(ctx context.Context, id string, at time.Time) (*Run, error)
	// ListRunIDs orders by start time, most recent first.
	ListRunIDs(ctx context.Context) ([]string, error)
}

// FindingRepository persists findings. Submit is not idempotent.
type FindingRepository interface {
	SubmitFinding(ctx context.Context, f *Finding) error
	// UpdateFinding fails with ErrFindingNotFound for unknown ids.
	UpdateFinding(ctx context.Context, id int64, answer Answer, explanation string) (*Finding, error)
	GetFinding(ctx context.Context, id int64) (*Finding, error)
	// ListFindings returns findings in creation order; empty runID lists all.
	ListFindings(ctx context.Context, runID string) ([]*Finding, error)
}

// Store bundles the three repositories a backend provides.
type Store interface {
	ProjectRepository
	RunRepository
	FindingRepository
}

// ReportArchive keeps rendered exports and returns where they can be fetched.
type ReportArchive interface {
	PutReport(ctx context.Context, key, contentType string, data []byte) (string, error)
}
