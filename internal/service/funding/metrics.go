package funding

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes reported on funding_submissions_total.
const (
	OutcomeCommitted         = "committed"
	OutcomeRejected          = "rejected"
	OutcomePartiallyUploaded = "partially_uploaded"
	OutcomePersistFailed     = "persist_failed"
)

// Metrics holds the Prometheus collectors of the submission pipeline.
type Metrics struct {
	submissions    *prometheus.CounterVec
	uploadDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funding",
			Name:      "submissions_total",
			Help:      "Funding request submissions by terminal outcome.",
		}, []string{"outcome"}),
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funding",
			Name:      "document_upload_seconds",
			Help:      "Duration of document uploads, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"document", "result"}),
	}
	reg.MustRegister(m.submissions, m.uploadDuration)

	// Expose every outcome at zero from the start.
	for _, o := range []string{OutcomeCommitted, OutcomeRejected, OutcomePartiallyUploaded, OutcomePersistFailed} {
		m.submissions.WithLabelValues(o)
	}
	return m
}

func (m *Metrics) outcome(o string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(o).Inc()
}

func (m *Metrics) upload(document string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.uploadDuration.WithLabelValues(document, result).Observe(d.Seconds())
}
