package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/application/audits"
	"github.com/bryanwahyu/auditronaut/internal/domain/ai"
	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
	"github.com/bryanwahyu/auditronaut/internal/domain/checklist"
	"github.com/bryanwahyu/auditronaut/internal/domain/evidence"
	"github.com/bryanwahyu/auditronaut/internal/infra/github"
	"github.com/bryanwahyu/auditronaut/internal/logging"
	"github.com/bryanwahyu/auditronaut/internal/metrics"
	"github.com/bryanwahyu/auditronaut/internal/middleware"
)

// DefaultMaxUpload caps one multipart request.
const DefaultMaxUpload = 64 << 20

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// Options carries the HTTP concerns around the audit service.
type Options struct {
	APIKeys     map[string]string
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter
	Health      map[string]middleware.HealthChecker
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Log         *zap.Logger
	MaxUpload   int64
}

type Router struct {
	svc       *audits.Service
	log       *zap.Logger
	maxUpload int64
}

func NewRouter(svc *audits.Service, opts Options) http.Handler {
	r := &Router{svc: svc, log: logging.OrNop(opts.Log), maxUpload: opts.MaxUpload}
	if r.maxUpload <= 0 {
		r.maxUpload = DefaultMaxUpload
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, chimw.Recoverer)
	mux.Use(middleware.Logging(r.log), middleware.Metrics(opts.Metrics))
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition", "X-Report-URL"},
			MaxAge:         300,
		}))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Health))
	mux.Get("/readyz", middleware.ReadinessHandler)
	mux.Get("/livez", middleware.LivenessHandler)
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.Route("/v1", func(rt chi.Router) {
		if len(opts.APIKeys) > 0 {
			rt.Use(middleware.APIKeyAuth(opts.APIKeys))
		}
		if opts.RateLimiter != nil {
			rt.Use(middleware.RateLimit(opts.RateLimiter))
		}

		rt.Post("/projects", r.wrap(r.handleCreateProject))
		rt.Get("/projects", r.wrap(r.handleListProjects))

		rt.Get("/frameworks", r.wrap(r.handleFrameworks))
		rt.Post("/runs", r.wrap(r.handleScheduleRun))
		rt.Get("/runs", r.wrap(r.handleListRuns))
		rt.Route("/runs/{runID}", func(run chi.Router) {
			run.Get("/status", r.wrap(r.handleStatus))
			run.Get("/scope", r.wrap(r.handleScope))
			run.Put("/complete", r.wrap(r.handleComplete))
			run.Post("/evidence", r.wrap(r.handleUpload))
			run.Post("/evidence/share", r.wrap(r.handleShare))
			run.Get("/evidence", r.wrap(r.handleEvidence))
			run.Post("/execute", r.wrap(r.handleExecute))
			run.Post("/reanalyze", r.wrap(r.handleReanalyze))
			run.Post("/custom", r.wrap(r.handleCustom))
			run.Put("/drafts", r.wrap(r.handleSetDraft))
			run.Delete("/drafts", r.wrap(r.handleClearDraft))
			run.Get("/scores", r.wrap(r.handleScores))
			run.Get("/counts", r.wrap(r.handleCounts))
			run.Get("/reports/full", r.wrap(r.handleFullReport))
			run.Get("/reports/actionable", r.wrap(r.handleActionableReport))
		})

		rt.Post("/findings", r.wrap(r.handleSubmitFinding))
		rt.Get("/findings", r.wrap(r.handleListFindings))
		rt.Get("/findings/{id}", r.wrap(r.handleGetFinding))
		rt.Put("/findings/{id}", r.wrap(r.handleUpdateFinding))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
			}
			http.Error(w, err.Error(), status)
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, audit.ErrRunNotFound), errors.Is(err, audit.ErrFindingNotFound):
		return http.StatusNotFound
	case errors.Is(err, audit.ErrProjectExists), errors.Is(err, audit.ErrRunExists),
		errors.Is(err, audit.ErrRunCompleted), errors.Is(err, audit.ErrRunBusy),
		errors.Is(err, checklist.ErrDuplicateQuestion):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, audit.ErrProjectNameEmpty),
		errors.Is(err, audit.ErrEmptyScope),
		errors.Is(err, audit.ErrUnknownFramework),
		errors.Is(err, audit.ErrInvalidAnswer),
		errors.Is(err, audit.ErrQuestionNumber),
		errors.Is(err, checklist.ErrInvalidWeight),
		errors.Is(err, checklist.ErrEmptyQuestion),
		errors.Is(err, checklist.ErrUnknownQuestion),
		errors.Is(err, github.ErrInvalidRepository):
		return http.StatusBadRequest
	case errors.Is(err, ai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, ai.ErrMalformedVerdict):
		return http.StatusBadGateway
	case errors.Is(err, evidence.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decode(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func runID(req *http.Request) (string, error) {
	id := chi.URLParam(req, "runID")
	if err := middleware.ValidateRunID(id); err != nil {
		return "", badRequest("%v", err)
	}
	return id, nil
}

// uploads reads the "files" parts of a multipart form.
func (r *Router) uploads(w http.ResponseWriter, req *http.Request) ([]evidence.Upload, error) {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	if err := req.ParseMultipartForm(r.maxUpload); err != nil {
		// form biasa tanpa file tetap boleh
		if errors.Is(err, http.ErrNotMultipart) {
			if err := req.ParseForm(); err != nil {
				return nil, badRequest("invalid form: %v", err)
			}
			return nil, nil
		}
		return nil, badRequest("invalid multipart form: %v", err)
	}
	var out []evidence.Upload
	for _, fh := range req.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, evidence.Upload{Name: fh.Filename, Data: data})
	}
	return out, nil
}

// POST /v1/projects
func (r *Router) handleCreateProject(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Organization string `json:"organization"`
		Name         string `json:"name"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	p, err := r.svc.CreateProject(req.Context(), middleware.SanitizeString(body.Organization), middleware.SanitizeString(body.Name))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, p)
}

// GET /v1/projects -> {organization: [name]}
func (r *Router) handleListProjects(w http.ResponseWriter, req *http.Request) error {
	projects, err := r.svc.ListProjects(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, projects)
}

// POST /v1/runs
func (r *Router) handleScheduleRun(w http.ResponseWriter, req *http.Request) error {
	var cmd audits.ScheduleRunCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	cmd.Project = middleware.SanitizeString(cmd.Project)
	cmd.Name = middleware.SanitizeString(cmd.Name)
	run, err := r.svc.ScheduleRun(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, run)
}

// GET /v1/runs
// GET /v1/frameworks
func (r *Router) handleFrameworks(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, r.svc.Frameworks())
}

func (r *Router) handleListRuns(w http.ResponseWriter, req *http.Request) error {
	ids, err := r.svc.ListRuns(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, ids)
}

// GET /v1/runs/{runID}/status
func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	status, err := r.svc.Status(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"run_id": id, "status": status})
}

// GET /v1/runs/{runID}/scope
func (r *Router) handleScope(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	scope, err := r.svc.Scope(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, scope)
}

// PUT /v1/runs/{runID}/complete
func (r *Router) handleComplete(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	run, err := r.svc.Complete(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, run)
}

// POST /v1/runs/{runID}/evidence (multipart "files")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	files, err := r.uploads(w, req)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return badRequest("no files uploaded")
	}
	stored, err := r.svc.Ingest(req.Context(), id, files)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"run_id": id, "documents": stored})
}

// POST /v1/runs/{runID}/evidence/share
func (r *Router) handleShare(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	var body struct {
		Prefix string `json:"prefix"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	if err := middleware.ValidatePrefix(body.Prefix); err != nil {
		return badRequest("%v", err)
	}
	stored, err := r.svc.FetchShare(req.Context(), id, body.Prefix)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"run_id": id, "documents": stored})
}

// GET /v1/runs/{runID}/evidence
func (r *Router) handleEvidence(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	names, err := r.svc.Evidence(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, names)
}

// POST /v1/runs/{runID}/execute
func (r *Router) handleExecute(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	var cmd audits.ExecuteCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body: %v", err)
	}
	if err := middleware.ValidateRepository(cmd.Repository); err != nil {
		return badRequest("%v", err)
	}
	// jalan di background sampai selesai
	err = r.svc.StartExecute(req.Context(), id, cmd, func(sum audits.Summary, err error) {
		if err != nil {
			r.log.Error("background audit failed", zap.String("run_id", id), zap.Error(err))
			return
		}
		r.log.Info("background audit finished",
			zap.String("run_id", id),
			zap.Int("answered", sum.Answered),
			zap.Int("failed", sum.Failed),
		)
	})
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusAccepted, map[string]any{
		"status":    "queued",
		"run_id":    id,
		"message":   "audit started in background",
		"queued_at": time.Now().UTC(),
	})
}

// POST /v1/runs/{runID}/reanalyze (multipart: questions, files, repository)
func (r *Router) handleReanalyze(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	files, err := r.uploads(w, req)
	if err != nil {
		return err
	}
	numbers, err := audits.ParseQuestionNumbers(req.FormValue("questions"))
	if err != nil {
		return err
	}
	repo := strings.TrimSpace(req.FormValue("repository"))
	if err := middleware.ValidateRepository(repo); err != nil {
		return badRequest("%v", err)
	}
	sum, err := r.svc.Reanalyze(req.Context(), id, audits.ReanalyzeCommand{Numbers: numbers, Uploads: files, Repository: repo})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, sum)
}

// POST /v1/runs/{runID}/custom (multipart: question, weight, files)
func (r *Router) handleCustom(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	files, err := r.uploads(w, req)
	if err != nil {
		return err
	}
	weight, err := strconv.Atoi(strings.TrimSpace(req.FormValue("weight")))
	if err != nil {
		return badRequest("weight must be an integer between %d and %d", audits.MinCustomWeight, audits.MaxCustomWeight)
	}
	out, err := r.svc.AddCustomQuestion(req.Context(), id, audits.CustomQuestionCommand{
		Question: middleware.SanitizeString(req.FormValue("question")),
		Weight:   weight,
		Uploads:  files,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, out)
}

// PUT /v1/runs/{runID}/drafts
func (r *Router) handleSetDraft(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	var body struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	if err := r.svc.SetDraft(req.Context(), id, body.Question, body.Answer); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// DELETE /v1/runs/{runID}/drafts
func (r *Router) handleClearDraft(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	var body struct {
		Question string `json:"question"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	if err := r.svc.ClearDraft(req.Context(), id, body.Question); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/runs/{runID}/scores
func (r *Router) handleScores(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	scores, err := r.svc.Scores(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, scores)
}

// GET /v1/runs/{runID}/counts?framework=PCI
func (r *Router) handleCounts(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	fw := strings.TrimSpace(req.URL.Query().Get("framework"))
	if fw == "" {
		return badRequest("framework is required")
	}
	counts, err := r.svc.AnswerCounts(req.Context(), id, checklist.Framework(fw))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, counts)
}

// GET /v1/runs/{runID}/reports/full
func (r *Router) handleFullReport(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	rep, err := r.svc.FullExport(req.Context(), id)
	if err != nil {
		return err
	}
	return r.sendReport(w, req, id, rep)
}

// GET /v1/runs/{runID}/reports/actionable
func (r *Router) handleActionableReport(w http.ResponseWriter, req *http.Request) error {
	id, err := runID(req)
	if err != nil {
		return err
	}
	rep, err := r.svc.ActionableExport(req.Context(), id)
	if err != nil {
		return err
	}
	return r.sendReport(w, req, id, rep)
}

// sendReport streams the file, or 204 when there is nothing to export.
// ?archive=true also keeps a copy in object storage and returns its URL in
// X-Report-URL.
func (r *Router) sendReport(w http.ResponseWriter, req *http.Request, id string, rep audits.Report) error {
	if archive, _ := strconv.ParseBool(req.URL.Query().Get("archive")); archive {
		archived, err := r.svc.ArchiveReport(req.Context(), id, rep)
		if err != nil {
			return err
		}
		if archived.URL != "" {
			w.Header().Set("X-Report-URL", archived.URL)
		}
	}
	if len(rep.Data) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.Data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(rep.Data)
	return err
}

// POST /v1/findings
func (r *Router) handleSubmitFinding(w http.ResponseWriter, req *http.Request) error {
	var cmd audits.SubmitFindingCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	f, err := r.svc.SubmitFinding(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, f)
}

// GET /v1/findings?run_id=
func (r *Router) handleListFindings(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.ListFindings(req.Context(), req.URL.Query().Get("run_id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

func findingID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("finding id must be a positive integer")
	}
	return id, nil
}

// GET /v1/findings/{id}
func (r *Router) handleGetFinding(w http.ResponseWriter, req *http.Request) error {
	id, err := findingID(req)
	if err != nil {
		return err
	}
	f, err := r.svc.GetFinding(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}

// PUT /v1/findings/{id}
func (r *Router) handleUpdateFinding(w http.ResponseWriter, req *http.Request) error {
	id, err := findingID(req)
	if err != nil {
		return err
	}
	var body struct {
		Answer      string `json:"answer"`
		Explanation string `json:"explanation"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	f, err := r.svc.UpdateFinding(req.Context(), id, body.Answer, body.Explanation)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, f)
}
