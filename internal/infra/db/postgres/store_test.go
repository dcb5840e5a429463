package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
)

var (
	started  = time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	finished = time.Date(2025, 2, 3, 17, 0, 0, 0, time.UTC)
	runCols  = []string{"run_id", "project", "scope", "status", "start_time", "end_time"}
)

type StoreSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.db, s.mock = db, mock
	s.store = NewStore(db)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *StoreSuite) expectGetRun(id string, rows *sqlmock.Rows) {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM audit_runs WHERE run_id=$1 LIMIT 1")).
		WithArgs(id).
		WillReturnRows(rows)
}

func (s *StoreSuite) TestCreateProject() {
	insert := regexp.QuoteMeta("INSERT INTO projects (organization, name) VALUES ($1, $2) RETURNING id")

	s.Run("returns the generated id", func() {
		s.mock.ExpectQuery(insert).
			WithArgs("-", "Payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		p := &audit.Project{Name: "Payments"}
		s.Require().NoError(s.store.CreateProject(s.ctx, p))
		s.Equal(int64(7), p.ID)
	})

	s.Run("duplicate name", func() {
		s.mock.ExpectQuery(insert).
			WithArgs("Acme", "Payments").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := s.store.CreateProject(s.ctx, &audit.Project{Organization: "Acme", Name: "Payments"})
		s.ErrorIs(err, audit.ErrProjectExists)
	})

	s.Run("foreign key errors pass through", func() {
		s.mock.ExpectQuery(insert).
			WillReturnError(&pq.Error{Code: "23503"})

		err := s.store.CreateProject(s.ctx, &audit.Project{Organization: "Acme", Name: "Billing"})
		s.Error(err)
		s.NotErrorIs(err, audit.ErrProjectExists)
	})
}

func (s *StoreSuite) TestStartRun() {
	run := &audit.Run{ID: "q1", Project: "Alpha", Scope: []checklist.Framework{"PCI", "GDPR"}, Status: audit.RunInProgress, StartTime: started}

	s.Run("scope is stored as a text array", func() {
		s.mock.ExpectExec("INSERT INTO audit_runs").
			WithArgs("q1", "Alpha", `{"PCI","GDPR"}`, audit.RunInProgress, started).
			WillReturnResult(sqlmock.NewResult(0, 1))
		s.Require().NoError(s.store.StartRun(s.ctx, run))
	})

	s.Run("duplicate id", func() {
		s.mock.ExpectExec("INSERT INTO audit_runs").
			WillReturnError(&pq.Error{Code: "23505"})
		s.ErrorIs(s.store.StartRun(s.ctx, run), audit.ErrRunExists)
	})
}

func (s *StoreSuite) TestGetRun() {
	s.Run("scope array is read back in order", func() {
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", []byte(`{PCI,GDPR}`), "in_progress", started, nil))

		run, err := s.store.GetRun(s.ctx, "q1")
		s.Require().NoError(err)
		s.Equal([]checklist.Framework{"PCI", "GDPR"}, run.Scope)
		s.Equal(audit.RunInProgress, run.Status)
		s.Nil(run.EndTime)
	})

	s.Run("missing", func() {
		s.expectGetRun("nope", sqlmock.NewRows(runCols))
		_, err := s.store.GetRun(s.ctx, "nope")
		s.ErrorIs(err, audit.ErrRunNotFound)
	})
}

func (s *StoreSuite) TestCompleteRun() {
	update := regexp.QuoteMeta("UPDATE audit_runs SET status = $1, end_time = $2 WHERE run_id = $3 AND status = $4")

	s.Run("in progress run completes", func() {
		s.mock.ExpectExec(update).
			WithArgs(audit.RunCompleted, finished, "q1", audit.RunInProgress).
			WillReturnResult(sqlmock.NewResult(0, 1))
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", []byte(`{PCI}`), "completed", started, finished))

		run, err := s.store.CompleteRun(s.ctx, "q1", finished)
		s.Require().NoError(err)
		s.Equal(audit.RunCompleted, run.Status)
		s.Require().NotNil(run.EndTime)
		s.Equal(finished, *run.EndTime)
	})

	s.Run("already completed run is not touched", func() {
		s.mock.ExpectExec(update).
			WithArgs(audit.RunCompleted, finished, "q1", audit.RunInProgress).
			WillReturnResult(sqlmock.NewResult(0, 0))
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", []byte(`{PCI}`), "completed", started, started))

		_, err := s.store.CompleteRun(s.ctx, "q1", finished)
		s.ErrorIs(err, audit.ErrRunCompleted)
	})

	s.Run("unknown run", func() {
		s.mock.ExpectExec(update).
			WillReturnResult(sqlmock.NewResult(0, 0))
		s.expectGetRun("nope", sqlmock.NewRows(runCols))

		_, err := s.store.CompleteRun(s.ctx, "nope", finished)
		s.ErrorIs(err, audit.ErrRunNotFound)
	})
}

func (s *StoreSuite) TestListRunIDs() {
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT run_id FROM audit_runs ORDER BY start_time DESC, run_id")).
		WillReturnRows(sqlmock.NewRows([]string{"run_id"}).AddRow("newest").AddRow("a_older").AddRow("b_older"))

	ids, err := s.store.ListRunIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"newest", "a_older", "b_older"}, ids)
}

func (s *StoreSuite) TestFindings() {
	cols := []string{"id", "run_id", "question", "answer", "explanation", "timestamp"}

	s.Run("submit returns the id", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1,$2,$3,$4,$5) RETURNING id")).
			WithArgs("q1", "Is a SOW signed?", audit.AnswerNo, "missing", started).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		f := &audit.Finding{RunID: "q1", Question: "Is a SOW signed?", Answer: audit.AnswerNo, Explanation: "missing", Timestamp: started}
		s.Require().NoError(s.store.SubmitFinding(s.ctx, f))
		s.Equal(int64(42), f.ID)
	})

	s.Run("update of an unknown finding", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("UPDATE audit_findings SET answer = $1, explanation = $2 WHERE id = $3 RETURNING")).
			WithArgs(audit.AnswerYes, "signed", int64(9)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := s.store.UpdateFinding(s.ctx, 9, audit.AnswerYes, "signed")
		s.ErrorIs(err, audit.ErrFindingNotFound)
	})

	s.Run("list every run", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("FROM audit_findings ORDER BY id ASC")).
			WithoutArgs().
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, "q1", "a", "Partial", "draft", started).
				AddRow(2, "q2", "b", "Yes", "", started))

		got, err := s.store.ListFindings(s.ctx, "")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(audit.AnswerPartial, got[0].Answer)
		s.Equal("q2", got[1].RunID)
	})
}
