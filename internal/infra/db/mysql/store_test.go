package mysql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
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
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM audit_runs\nWHERE run_id=? LIMIT 1")).
		WithArgs(id).
		WillReturnRows(rows)
}

func (s *StoreSuite) TestCreateProject() {
	s.Run("assigns the generated id", func() {
		s.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO projects (organization, name) VALUES (?, ?)")).
			WithArgs("-", "Payments").
			WillReturnResult(sqlmock.NewResult(7, 1))

		p := &audit.Project{Name: "Payments"}
		s.Require().NoError(s.store.CreateProject(s.ctx, p))
		s.Equal(int64(7), p.ID)
	})

	s.Run("duplicate name", func() {
		s.mock.ExpectExec("INSERT INTO projects").
			WithArgs("Acme", "Payments").
			WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry 'Payments'"})

		err := s.store.CreateProject(s.ctx, &audit.Project{Organization: "Acme", Name: "Payments"})
		s.ErrorIs(err, audit.ErrProjectExists)
	})

	s.Run("other driver errors pass through", func() {
		s.mock.ExpectExec("INSERT INTO projects").
			WillReturnError(&driver.MySQLError{Number: 1146, Message: "Table doesn't exist"})

		err := s.store.CreateProject(s.ctx, &audit.Project{Organization: "Acme", Name: "Billing"})
		s.Error(err)
		s.NotErrorIs(err, audit.ErrProjectExists)
	})
}

func (s *StoreSuite) TestStartRun() {
	run := &audit.Run{ID: "q1", Project: "Alpha", Scope: []checklist.Framework{"PCI", "GDPR"}, Status: audit.RunInProgress, StartTime: started}

	s.Run("scope is stored comma separated", func() {
		s.mock.ExpectExec("INSERT INTO audit_runs").
			WithArgs("q1", "Alpha", "PCI,GDPR", audit.RunInProgress, started).
			WillReturnResult(sqlmock.NewResult(0, 1))
		s.Require().NoError(s.store.StartRun(s.ctx, run))
	})

	s.Run("duplicate id", func() {
		s.mock.ExpectExec("INSERT INTO audit_runs").
			WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry 'q1'"})
		s.ErrorIs(s.store.StartRun(s.ctx, run), audit.ErrRunExists)
	})
}

func (s *StoreSuite) TestGetRun() {
	s.Run("scope and end time", func() {
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", "PCI,GDPR", "completed", started, finished))

		run, err := s.store.GetRun(s.ctx, "q1")
		s.Require().NoError(err)
		s.Equal([]checklist.Framework{"PCI", "GDPR"}, run.Scope)
		s.Equal(audit.RunCompleted, run.Status)
		s.Require().NotNil(run.EndTime)
		s.Equal(finished, *run.EndTime)
	})

	s.Run("missing", func() {
		s.expectGetRun("nope", sqlmock.NewRows(runCols))
		_, err := s.store.GetRun(s.ctx, "nope")
		s.ErrorIs(err, audit.ErrRunNotFound)
	})
}

func (s *StoreSuite) TestCompleteRun() {
	update := regexp.QuoteMeta("UPDATE audit_runs\nSET status = ?, end_time = ?\nWHERE run_id = ? AND status = ?")

	s.Run("in progress run completes", func() {
		s.mock.ExpectExec(update).
			WithArgs(audit.RunCompleted, finished, "q1", audit.RunInProgress).
			WillReturnResult(sqlmock.NewResult(0, 1))
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", "PCI", "completed", started, finished))

		run, err := s.store.CompleteRun(s.ctx, "q1", finished)
		s.Require().NoError(err)
		s.Equal(audit.RunCompleted, run.Status)
	})

	s.Run("already completed run is not touched", func() {
		s.mock.ExpectExec(update).
			WithArgs(audit.RunCompleted, finished, "q1", audit.RunInProgress).
			WillReturnResult(sqlmock.NewResult(0, 0))
		s.expectGetRun("q1", sqlmock.NewRows(runCols).
			AddRow("q1", "Alpha", "PCI", "completed", started, started))

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

	s.Run("submit", func() {
		s.mock.ExpectExec("INSERT INTO audit_findings").
			WithArgs("q1", "Is a SOW signed?", audit.AnswerNo, "missing", started).
			WillReturnResult(sqlmock.NewResult(42, 1))

		f := &audit.Finding{RunID: "q1", Question: "Is a SOW signed?", Answer: audit.AnswerNo, Explanation: "missing", Timestamp: started}
		s.Require().NoError(s.store.SubmitFinding(s.ctx, f))
		s.Equal(int64(42), f.ID)
	})

	s.Run("update re-reads the row", func() {
		s.mock.ExpectExec(regexp.QuoteMeta("UPDATE audit_findings SET answer = ?, explanation = ? WHERE id = ?")).
			WithArgs(audit.AnswerYes, "signed", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		s.mock.ExpectQuery("FROM audit_findings WHERE id = ").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(42, "q1", "Is a SOW signed?", "Yes", "signed", started))

		f, err := s.store.UpdateFinding(s.ctx, 42, audit.AnswerYes, "signed")
		s.Require().NoError(err)
		s.Equal(audit.AnswerYes, f.Answer)
	})

	s.Run("unknown finding", func() {
		s.mock.ExpectQuery("FROM audit_findings WHERE id = ").
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(cols))
		_, err := s.store.GetFinding(s.ctx, 9)
		s.ErrorIs(err, audit.ErrFindingNotFound)
	})

	s.Run("list by run in id order", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("FROM audit_findings WHERE run_id = ? ORDER BY id ASC")).
			WithArgs("q1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, "q1", "a", "No", "", started).
				AddRow(2, "q1", "b", "N/A", "", started))

		got, err := s.store.ListFindings(s.ctx, "q1")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(int64(1), got[0].ID)
		s.Equal(audit.AnswerNA, got[1].Answer)
	})
}
