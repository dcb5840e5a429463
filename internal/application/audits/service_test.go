package audits

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/bryanwahyu/auditronaut/internal/application"
	"github.com/bryanwahyu/auditronaut/internal/application/matching"
	"github.com/bryanwahyu/auditronaut/internal/domain/ai"
	aimocks "github.com/bryanwahyu/auditronaut/internal/domain/ai/mocks"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
	"github.com/bryanwahyu/auditronaut/internal/infra/db/memory"
	"github.com/bryanwahyu/auditronaut/internal/metrics"
)

const (
	qSOW    = "Is a signed SOW available?"
	qPlan   = "Is there a project management plan?"
	qReadme = "Does the repository have a README?"
	qGDPR   = "Is a DPIA documented?"
)

var testNow = time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC)

func testCatalog() *checklist.Catalog {
	c, err := checklist.NewCatalog([]checklist.Item{
		{Subject: "Contracts", Question: qSOW, Keywords: []string{"sow"}, Weight: 3, Tags: []checklist.Framework{"PCI"}},
		{Subject: "Planning", Question: qPlan, Keywords: []string{"project plan"}, Weight: 2, Tags: []checklist.Framework{"PCI"}},
		{Subject: "Code", Question: qReadme, Keywords: []string{"README.md"}, Weight: 1, Tags: []checklist.Framework{"PCI", "GitHub"}, Source: checklist.SourceCodeRepository},
		{Subject: "Privacy", Question: qGDPR, Keywords: []string{"dpia"}, Weight: 4, Tags: []checklist.Framework{"GDPR"}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

type nameExtractor struct{}

func (nameExtractor) Extract(name string, data []byte) string {
	return "text of " + name + ": " + string(data)
}

type codeFetcher func(ctx context.Context, repository string, paths []string) (string, error)

func (f codeFetcher) FetchFiles(ctx context.Context, repository string, paths []string) (string, error) {
	return f(ctx, repository, paths)
}

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	answerer *aimocks.MockAnswerer
	store    *memory.Store
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.answerer = aimocks.NewMockAnswerer(s.ctrl)
	s.store = memory.New()
	s.ctx = context.Background()
	s.service = &Service{
		Store:     s.store,
		Answerer:  s.answerer,
		Catalog:   testCatalog(),
		Matcher:   matching.New(85),
		Extractor: nameExtractor{},
		Clock:     application.FixedClock(testNow),
		Options: Options{
			AnswerTimeout:       time.Second,
			DefaultOrganization: "Google",
			DefaultProjects:     []string{"Project_Alpha", "Project_Beta"},
		},
	}
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) schedule(name string, frameworks ...string) *audit.Run {
	run, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Project: "Alpha", Frameworks: frameworks, Name: name})
	s.Require().NoError(err)
	return run
}

func (s *ServiceSuite) TestProjects() {
	s.Run("seeds defaults into an empty store", func() {
		got, err := s.service.ListProjects(s.ctx)
		s.Require().NoError(err)
		s.Equal(map[string][]string{"Google": {"Project_Alpha", "Project_Beta"}}, got)
	})

	s.Run("create and group", func() {
		_, err := s.service.CreateProject(s.ctx, "Acme", "  Billing  ")
		s.Require().NoError(err)
		got, err := s.service.ListProjects(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"Billing"}, got["Acme"])
	})

	s.Run("duplicate name", func() {
		_, err := s.service.CreateProject(s.ctx, "Other", "Billing")
		s.ErrorIs(err, audit.ErrProjectExists)
	})

	s.Run("empty name", func() {
		_, err := s.service.CreateProject(s.ctx, "Acme", "   ")
		s.ErrorIs(err, audit.ErrProjectNameEmpty)
	})
}

func (s *ServiceSuite) TestScheduleRun() {
	s.Run("name derives id", func() {
		run := s.schedule("  Q1 Review ", "pci", "GDPR", "PCI")
		s.Equal("q1_review", run.ID)
		s.Equal([]checklist.Framework{"PCI", "GDPR"}, run.Scope)
		s.Equal(audit.RunInProgress, run.Status)
		s.Nil(run.EndTime)
	})

	s.Run("default name", func() {
		run, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Project: "Project Alpha", Frameworks: []string{"PCI"}})
		s.Require().NoError(err)
		s.Equal("project_alpha_pci_20250203", run.ID)
	})

	s.Run("existing id", func() {
		_, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Frameworks: []string{"PCI"}, Name: "Q1 review"})
		s.ErrorIs(err, audit.ErrRunExists)
	})

	s.Run("empty scope", func() {
		_, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Name: "x"})
		s.ErrorIs(err, audit.ErrEmptyScope)
	})

	s.Run("unknown or custom framework", func() {
		_, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Name: "x", Frameworks: []string{"SOX"}})
		s.ErrorIs(err, audit.ErrUnknownFramework)
		_, err = s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Name: "y", Frameworks: []string{"Custom"}})
		s.ErrorIs(err, audit.ErrUnknownFramework)
	})

	s.Run("tag only frameworks are not schedulable", func() {
		_, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Name: "z", Frameworks: []string{"github"}})
		s.ErrorIs(err, audit.ErrUnknownFramework)
	})

	s.Run("schedulable framework without questions", func() {
		_, err := s.service.ScheduleRun(s.ctx, ScheduleRunCommand{Name: "w", Frameworks: []string{"ITSM"}})
		s.ErrorIs(err, audit.ErrUnknownFramework)
	})

	s.Run("frameworks offered for scheduling", func() {
		s.Equal([]checklist.Framework{"PCI", "GDPR"}, s.service.Frameworks())
	})
}

func (s *ServiceSuite) TestRunLifecycle() {
	s.schedule("r1", "PCI")

	status, err := s.service.Status(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(audit.RunInProgress, status)

	scope, err := s.service.Scope(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal([]checklist.Framework{"PCI"}, scope)

	run, err := s.service.Complete(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(audit.RunCompleted, run.Status)

	_, err = s.service.Complete(s.ctx, "r1")
	s.ErrorIs(err, audit.ErrRunCompleted)

	_, err = s.service.Status(s.ctx, "missing")
	s.ErrorIs(err, audit.ErrRunNotFound)
}

func zipOf(s *ServiceSuite, files map[string]string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		s.Require().NoError(err)
		_, err = w.Write([]byte(body))
		s.Require().NoError(err)
	}
	s.Require().NoError(zw.Close())
	return buf.Bytes()
}

func (s *ServiceSuite) TestIngest() {
	s.schedule("r1", "PCI")

	stored, err := s.service.Ingest(s.ctx, "r1", []evidence.Upload{
		{Name: "signed_sow.pdf", Data: []byte("a")},
		{Name: "notes.txt", Data: []byte("ignored")},
		{Name: "bundle.zip", Data: zipOf(s, map[string]string{"signed_sow.pdf": "b"})},
		{Name: "signed_sow.pdf", Data: []byte("c")},
	})
	s.Require().NoError(err)
	s.Equal([]string{"signed_sow.pdf", "local_zip_signed_sow.pdf", "local_signed_sow.pdf"}, stored)

	names, err := s.service.Evidence(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(stored, names)

	_, err = s.service.Ingest(s.ctx, "missing", nil)
	s.ErrorIs(err, audit.ErrRunNotFound)

	_, err = s.service.FetchShare(s.ctx, "r1", "audits/")
	s.ErrorIs(err, evidence.ErrSourceUnavailable)
}

func (s *ServiceSuite) TestExecute() {
	s.schedule("r1", "PCI")
	_, err := s.service.Ingest(s.ctx, "r1", []evidence.Upload{
		{Name: "Final Project Plan.docx", Data: []byte("milestones")},
		{Name: "invoice.pdf", Data: []byte("amount")},
	})
	s.Require().NoError(err)

	gomock.InOrder(
		s.answerer.EXPECT().Answer(gomock.Any(), qSOW, matching.NoEvidence).
			Return(ai.Verdict{Answer: audit.AnswerNo, Explanation: "no SOW"}, nil),
		s.answerer.EXPECT().Answer(gomock.Any(), qPlan, "--- Content from Final Project Plan.docx ---\ntext of Final Project Plan.docx: milestones").
			Return(ai.Verdict{}, errors.New("connection reset")),
		s.answerer.EXPECT().Answer(gomock.Any(), qReadme, NoRepository).
			Return(ai.Verdict{Answer: audit.AnswerYes, Explanation: "present"}, nil),
	)

	var seen []int
	sum, err := s.service.Execute(s.ctx, "r1", ExecuteCommand{}, func(o Outcome) { seen = append(seen, o.Number) })
	s.Require().NoError(err)

	s.Equal([]int{1, 2, 3}, seen)
	s.Equal(2, sum.Answered)
	s.Equal(1, sum.Failed)
	s.Equal(OutcomeFailed, sum.Outcomes[1].Status)
	s.Equal([]string{"Final Project Plan.docx"}, sum.Outcomes[1].Documents)

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Require().Len(findings, 2)
	s.Equal(qSOW, findings[0].Question)
	s.Equal(testNow, findings[0].Timestamp)

	status, err := s.service.Status(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(audit.RunCompleted, status)

	_, err = s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.ErrorIs(err, audit.ErrRunCompleted)
}

func (s *ServiceSuite) TestExecuteUpdatesExistingFinding() {
	s.schedule("r1", "GDPR")
	prior, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qGDPR, Answer: "no"})
	s.Require().NoError(err)

	s.answerer.EXPECT().Answer(gomock.Any(), qGDPR, gomock.Any()).
		Return(ai.Verdict{Answer: audit.AnswerPartial, Explanation: "draft DPIA"}, nil)

	_, err = s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.Require().NoError(err)

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Require().Len(findings, 1)
	s.Equal(prior.ID, findings[0].ID)
	s.Equal(audit.AnswerPartial, findings[0].Answer)
}

func (s *ServiceSuite) TestExecuteCodeRepository() {
	s.schedule("r1", "PCI")
	s.service.Code = codeFetcher(func(_ context.Context, repo string, paths []string) (string, error) {
		s.Equal("acme/shop", repo)
		s.Equal([]string{"README.md"}, paths)
		return "--- Content from README.md ---\n# shop", nil
	})

	s.answerer.EXPECT().Answer(gomock.Any(), qReadme, "--- Content from README.md ---\n# shop").
		Return(ai.Verdict{Answer: audit.AnswerYes}, nil)
	s.answerer.EXPECT().Answer(gomock.Any(), gomock.Any(), matching.NoEvidence).
		Return(ai.Verdict{Answer: audit.AnswerNo}, nil).Times(2)

	sum, err := s.service.Execute(s.ctx, "r1", ExecuteCommand{Repository: "acme/shop"}, nil)
	s.Require().NoError(err)
	s.Equal(3, sum.Answered)
	s.Equal([]string{"README.md"}, sum.Outcomes[2].Documents)
}

func (s *ServiceSuite) TestExecuteTimeout() {
	s.service.Options.AnswerTimeout = 20 * time.Millisecond
	s.schedule("r1", "GDPR")

	s.answerer.EXPECT().Answer(gomock.Any(), qGDPR, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) (ai.Verdict, error) {
			<-ctx.Done()
			return ai.Verdict{}, ctx.Err()
		})

	sum, err := s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.Require().NoError(err)
	s.Equal(1, sum.Failed)
	s.Contains(sum.Outcomes[0].Error, "deadline exceeded")
}

func (s *ServiceSuite) TestExecuteCancelled() {
	s.schedule("r1", "PCI")
	ctx, cancel := context.WithCancel(s.ctx)

	s.answerer.EXPECT().Answer(gomock.Any(), qSOW, gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (ai.Verdict, error) {
			cancel()
			return ai.Verdict{Answer: audit.AnswerYes}, nil
		})

	sum, err := s.service.Execute(ctx, "r1", ExecuteCommand{}, nil)
	s.ErrorIs(err, context.Canceled)
	s.Equal(1, sum.Answered)

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Len(findings, 1)

	status, err := s.service.Status(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(audit.RunInProgress, status)
}

func (s *ServiceSuite) TestExecuteOnePassPerRun() {
	s.schedule("r1", "PCI")
	started := make(chan struct{})
	release := make(chan struct{})

	s.answerer.EXPECT().Answer(gomock.Any(), qSOW, gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (ai.Verdict, error) {
			close(started)
			<-release
			return ai.Verdict{Answer: audit.AnswerYes, Explanation: "signed"}, nil
		})
	s.answerer.EXPECT().Answer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ai.Verdict{Answer: audit.AnswerNo, Explanation: "missing"}, nil).Times(2)

	done := make(chan Summary, 1)
	s.Require().NoError(s.service.StartExecute(s.ctx, "r1", ExecuteCommand{}, func(sum Summary, err error) {
		s.NoError(err)
		done <- sum
	}))
	<-started

	_, err := s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.ErrorIs(err, audit.ErrRunBusy)
	s.ErrorIs(s.service.StartExecute(s.ctx, "r1", ExecuteCommand{}, nil), audit.ErrRunBusy)
	_, err = s.service.Reanalyze(s.ctx, "r1", ReanalyzeCommand{Numbers: []int{1}})
	s.ErrorIs(err, audit.ErrRunBusy)

	close(release)
	select {
	case sum := <-done:
		s.Equal(3, sum.Answered)
	case <-time.After(2 * time.Second):
		s.FailNow("background pass did not finish")
	}

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Len(findings, 3, "each question is submitted once")

	_, err = s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.ErrorIs(err, audit.ErrRunCompleted, "the claim is released once the pass ends")
}

func (s *ServiceSuite) TestReanalyze() {
	m := metrics.New(prometheus.NewRegistry())
	s.service.Metrics = m
	s.schedule("r1", "PCI")
	_, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qSOW, Answer: "No", Explanation: "missing"})
	s.Require().NoError(err)
	plan, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qPlan, Answer: "Partial", Explanation: "outline"})
	s.Require().NoError(err)
	_, err = s.service.Complete(s.ctx, "r1")
	s.Require().NoError(err)

	_, err = s.service.Ingest(s.ctx, "r1", []evidence.Upload{{Name: "sow.pdf", Data: []byte("old")}})
	s.Require().NoError(err)

	s.answerer.EXPECT().Answer(gomock.Any(), qSOW, "--- Content from sow.pdf ---\ntext of sow.pdf: new").
		Return(ai.Verdict{Answer: audit.AnswerYes, Explanation: "signed"}, nil)
	s.answerer.EXPECT().Answer(gomock.Any(), qPlan, gomock.Any()).
		Return(ai.Verdict{}, ai.ErrMalformedVerdict)

	sum, err := s.service.Reanalyze(s.ctx, "r1", ReanalyzeCommand{
		Numbers: []int{1, 2, 3, 9},
		Uploads: []evidence.Upload{{Name: "sow.pdf", Data: []byte("new")}},
	})
	s.Require().NoError(err)
	s.Equal(1, sum.Answered)
	s.Equal(1, sum.Failed)
	s.Equal(2, sum.Skipped)
	s.Equal("no initial result to update", sum.Outcomes[2].Error)
	s.Equal("question number out of range", sum.Outcomes[3].Error)

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Require().Len(findings, 2)
	s.Equal(audit.AnswerYes, findings[0].Answer)

	untouched, err := s.store.GetFinding(s.ctx, plan.ID)
	s.Require().NoError(err)
	s.Equal(audit.AnswerPartial, untouched.Answer)
	s.Equal("outline", untouched.Explanation)

	status, err := s.service.Status(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(audit.RunCompleted, status)

	s.Equal(1.0, testutil.ToFloat64(m.Documents.WithLabelValues(string(evidence.OriginRevision))))
	s.Equal(1.0, testutil.ToFloat64(m.Documents.WithLabelValues(string(evidence.OriginUpload))))
	s.Equal([]string{"sow.pdf"}, mustNames(s.service.Evidence(s.ctx, "r1")))
}

func mustNames(names []string, err error) []string {
	if err != nil {
		panic(err)
	}
	return names
}

func (s *ServiceSuite) TestExecuteRejectsUnknownAnswer() {
	s.schedule("r1", "GDPR")
	s.answerer.EXPECT().Answer(gomock.Any(), qGDPR, gomock.Any()).
		Return(ai.Verdict{Answer: "Maybe", Explanation: "unsure"}, nil)

	sum, err := s.service.Execute(s.ctx, "r1", ExecuteCommand{}, nil)
	s.Require().NoError(err)
	s.Equal(1, sum.Failed)
	s.Contains(sum.Outcomes[0].Error, ai.ErrMalformedVerdict.Error())

	findings, err := s.store.ListFindings(s.ctx, "r1")
	s.Require().NoError(err)
	s.Empty(findings)
}

func (s *ServiceSuite) TestParseQuestionNumbers() {
	got, err := ParseQuestionNumbers(" 3, 5,12 ,")
	s.Require().NoError(err)
	s.Equal([]int{3, 5, 12}, got)

	for _, bad := range []string{"", "a,2", "0", "-1", " , "} {
		_, err := ParseQuestionNumbers(bad)
		s.ErrorIs(err, audit.ErrQuestionNumber, bad)
	}
}

func (s *ServiceSuite) TestAddCustomQuestion() {
	s.schedule("r1", "GDPR")

	s.Run("weight outside 1..5", func() {
		_, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{Question: "Q?", Weight: 6})
		s.ErrorIs(err, checklist.ErrInvalidWeight)
	})

	s.Run("duplicate of a checklist question", func() {
		_, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{Question: qSOW, Weight: 3})
		s.ErrorIs(err, checklist.ErrDuplicateQuestion)
	})

	s.Run("answered without documents", func() {
		s.answerer.EXPECT().Answer(gomock.Any(), "Is MFA enforced?", NoDocument).
			Return(ai.Verdict{Answer: audit.AnswerYes, Explanation: "enforced"}, nil)

		out, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{Question: "Is MFA enforced?", Weight: 2})
		s.Require().NoError(err)
		s.Equal(OutcomeAnswered, out.Status)
		s.Equal(2, out.Number)
	})

	s.Run("answered from supplied documents only", func() {
		s.answerer.EXPECT().Answer(gomock.Any(), "Is there a DR plan?", "--- Content from dr.pdf ---\ntext of dr.pdf: plan").
			Return(ai.Verdict{Answer: audit.AnswerNo}, nil)

		_, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{
			Question: "Is there a DR plan?",
			Weight:   4,
			Uploads:  []evidence.Upload{{Name: "dr.pdf", Data: []byte("plan")}},
		})
		s.Require().NoError(err)
	})

	s.Run("second add of the same text", func() {
		_, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{Question: "Is MFA enforced?", Weight: 2})
		s.ErrorIs(err, checklist.ErrDuplicateQuestion)
	})

	s.Run("answerer failure adds nothing", func() {
		s.answerer.EXPECT().Answer(gomock.Any(), "Flaky?", NoDocument).Return(ai.Verdict{}, ai.ErrQuotaExceeded)
		_, err := s.service.AddCustomQuestion(s.ctx, "r1", CustomQuestionCommand{Question: "Flaky?", Weight: 1})
		s.ErrorIs(err, ai.ErrQuotaExceeded)
		s.Len(s.service.sessions.get("r1").customItems(), 2)
	})

	s.Run("custom appears in scores", func() {
		scores, err := s.service.Scores(s.ctx, "r1")
		s.Require().NoError(err)
		s.Require().Len(scores, 2)
		s.Equal(checklist.FrameworkGDPR, scores[0].Framework)
		s.Equal(4.0, scores[0].Max)
		s.Equal(checklist.FrameworkCustom, scores[1].Framework)
		s.Equal(2.0, scores[1].Achieved)
		s.Equal(6.0, scores[1].Max)
	})
}

func (s *ServiceSuite) TestScoresAndDrafts() {
	s.schedule("r1", "PCI", "GDPR")
	_, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qSOW, Answer: "Yes"})
	s.Require().NoError(err)
	plan, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qPlan, Answer: "No"})
	s.Require().NoError(err)
	_, err = s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qGDPR, Answer: "N/A"})
	s.Require().NoError(err)

	scores, err := s.service.Scores(s.ctx, "r1")
	s.Require().NoError(err)
	// GDPR has only an N/A item so it is not reported
	s.Require().Len(scores, 1)
	s.Equal(3.0, scores[0].Achieved)
	s.Equal(6.0, scores[0].Max)
	s.Equal(50.0, scores[0].Percentage)

	s.Require().NoError(s.service.SetDraft(s.ctx, "r1", qPlan, "partial"))
	scores, err = s.service.Scores(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(4.0, scores[0].Achieved)

	counts, err := s.service.AnswerCounts(s.ctx, "r1", checklist.FrameworkPCI)
	s.Require().NoError(err)
	s.Equal(1, counts.Yes)
	s.Equal(1, counts.Partial)
	s.Equal(0, counts.No)

	s.ErrorIs(s.service.SetDraft(s.ctx, "r1", "Unknown?", "Yes"), checklist.ErrUnknownQuestion)
	s.ErrorIs(s.service.SetDraft(s.ctx, "r1", qPlan, "maybe"), audit.ErrInvalidAnswer)

	s.Run("saving the edit drops the draft", func() {
		_, err := s.service.UpdateFinding(s.ctx, plan.ID, "Yes", "plan approved")
		s.Require().NoError(err)
		s.Empty(s.service.sessions.get("r1").draftsCopy())

		scores, err := s.service.Scores(s.ctx, "r1")
		s.Require().NoError(err)
		s.Equal(5.0, scores[0].Achieved)
	})

	s.Run("clear draft", func() {
		s.Require().NoError(s.service.SetDraft(s.ctx, "r1", qSOW, "No"))
		s.Require().NoError(s.service.ClearDraft(s.ctx, "r1", qSOW))
		s.Empty(s.service.sessions.get("r1").draftsCopy())
	})
}

func (s *ServiceSuite) TestFindingValidation() {
	s.schedule("r1", "PCI")

	_, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "missing", Question: qSOW, Answer: "Yes"})
	s.ErrorIs(err, audit.ErrRunNotFound)

	_, err = s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qSOW, Answer: "Maybe"})
	s.ErrorIs(err, audit.ErrInvalidAnswer)

	_, err = s.service.UpdateFinding(s.ctx, 42, "Yes", "")
	s.ErrorIs(err, audit.ErrFindingNotFound)

	ts := testNow.Add(-time.Hour)
	f, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qSOW, Answer: "yes", Timestamp: &ts})
	s.Require().NoError(err)
	s.Equal(audit.AnswerYes, f.Answer)
	s.Equal(ts, f.Timestamp)
}

type fakeArchive struct {
	key         string
	contentType string
}

func (a *fakeArchive) PutReport(_ context.Context, key, contentType string, _ []byte) (string, error) {
	a.key, a.contentType = key, contentType
	return "http://minio/reports/" + key, nil
}

func (s *ServiceSuite) TestExports() {
	s.schedule("r1", "PCI")

	s.Run("empty findings", func() {
		full, err := s.service.FullExport(s.ctx, "r1")
		s.Require().NoError(err)
		s.Empty(full.Data)
		s.Equal("r1_full_report.xlsx", full.Filename)

		archived, err := s.service.ArchiveReport(s.ctx, "r1", full)
		s.Require().NoError(err)
		s.Empty(archived.URL)
	})

	_, err := s.service.SubmitFinding(s.ctx, SubmitFindingCommand{RunID: "r1", Question: qSOW, Answer: "No", Explanation: "missing"})
	s.Require().NoError(err)

	s.Run("both formats render", func() {
		full, err := s.service.FullExport(s.ctx, "r1")
		s.Require().NoError(err)
		s.NotEmpty(full.Data)

		act, err := s.service.ActionableExport(s.ctx, "r1")
		s.Require().NoError(err)
		s.Equal("remediation_report_r1.docx", act.Filename)
		s.NotEmpty(act.Data)

		archive := &fakeArchive{}
		s.service.Archive = archive
		archived, err := s.service.ArchiveReport(s.ctx, "r1", act)
		s.Require().NoError(err)
		s.Contains(archived.URL, "http://minio/reports/r1/")
		s.Equal(ContentTypeDOCX, archive.contentType)
	})

	s.Run("unknown run", func() {
		_, err := s.service.ActionableExport(s.ctx, "missing")
		s.ErrorIs(err, audit.ErrRunNotFound)
		_, err = s.service.FullExport(s.ctx, "missing")
		s.ErrorIs(err, audit.ErrRunNotFound)
	})
}
