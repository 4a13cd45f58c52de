package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Submissions        prometheus.Counter
	DuplicatesRejected prometheus.Counter
	Edits              prometheus.Counter
	ValidationFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics. Call once per process;
// promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donorcheck_submissions_total",
			Help: "Total number of inspection records accepted",
		}),
		DuplicatesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donorcheck_duplicates_rejected_total",
			Help: "Total number of submissions rejected as duplicates",
		}),
		Edits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donorcheck_edits_total",
			Help: "Total number of record edits applied",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "donorcheck_validation_failures_total",
			Help: "Total number of payloads rejected by validation",
		}),
	}
}

func (m *Metrics) IncSubmission()        { m.Submissions.Inc() }
func (m *Metrics) IncDuplicateRejected() { m.DuplicatesRejected.Inc() }
func (m *Metrics) IncEdit()              { m.Edits.Inc() }
func (m *Metrics) IncValidationFailure() { m.ValidationFailures.Inc() }
