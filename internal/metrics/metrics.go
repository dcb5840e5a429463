package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit workflow and the HTTP layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP requests by method, route pattern and status
	Requests *prometheus.CounterVec
	// HTTP latency by route pattern
	RequestLatency *prometheus.HistogramVec

	// Question outcomes: answered, failed, skipped
	Questions *prometheus.CounterVec
	// Answerer round-trip latency
	AnswerLatency prometheus.Histogram

	// Evidence documents ingested by origin
	Documents *prometheus.CounterVec

	// Findings written by kind: submit, update
	Findings *prometheus.CounterVec
}

// New registers every metric on reg. Passing nil uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auditronaut_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		RequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "auditronaut_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		Questions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auditronaut_questions_total",
			Help: "Checklist questions processed by outcome",
		}, []string{"outcome"}),

		AnswerLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "auditronaut_answer_duration_seconds",
			Help:    "Duration of answering one question including evidence lookup",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),

		Documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auditronaut_evidence_documents_total",
			Help: "Evidence documents ingested by origin",
		}, []string{"origin"}),

		Findings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "auditronaut_findings_written_total",
			Help: "Findings written by kind",
		}, []string{"kind"}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(method, route, status).Inc()
		m.RequestLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementQuestion records a question outcome.
func (m *Metrics) IncrementQuestion(outcome string) {
	if m != nil {
		m.Questions.WithLabelValues(outcome).Inc()
	}
}

// ObserveAnswerLatency records one answering round-trip.
func (m *Metrics) ObserveAnswerLatency(d time.Duration) {
	if m != nil {
		m.AnswerLatency.Observe(d.Seconds())
	}
}

// AddDocuments records n ingested documents from origin.
func (m *Metrics) AddDocuments(origin string, n int) {
	if m != nil && n > 0 {
		m.Documents.WithLabelValues(origin).Add(float64(n))
	}
}

// IncrementFinding records a finding write.
func (m *Metrics) IncrementFinding(kind string) {
	if m != nil {
		m.Findings.WithLabelValues(kind).Inc()
	}
}
