package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the uploader's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	submissions      *prometheus.CounterVec
	filesUploaded    prometheus.Counter
	upstreamFailures *prometheus.CounterVec
	duration         prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploader_submissions_total",
			Help: "Form submissions by outcome.",
		}, []string{"outcome"}),
		filesUploaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "uploader_files_uploaded_total",
			Help: "Files stored through signed URLs.",
		}),
		upstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploader_upstream_failures_total",
			Help: "Failed remote calls by pipeline step.",
		}, []string{"step"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "uploader_submission_duration_seconds",
			Help:    "Wall time of submissions that reached the network.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
	m.registry.MustRegister(m.submissions, m.filesUploaded, m.upstreamFailures, m.duration)
	return m
}

// ObserveSubmission records one finished submission.
func (m *Metrics) ObserveSubmission(outcome string, uploaded int, d time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	if uploaded > 0 {
		m.filesUploaded.Add(float64(uploaded))
	}
	if d > 0 {
		m.duration.Observe(d.Seconds())
	}
}

// IncUpstreamFailure counts a failed remote call.
func (m *Metrics) IncUpstreamFailure(step string) {
	if m == nil {
		return
	}
	m.upstreamFailures.WithLabelValues(step).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes metrics in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
