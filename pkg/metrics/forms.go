package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded per form.
const (
	OutcomeAccepted  = "accepted"
	OutcomeRejected  = "rejected"
	OutcomeDiscarded = "discarded"
	OutcomeFailed    = "failed"
)

// FormMetrics records intake outcomes and notification delivery timing
// for the public form endpoints.
type FormMetrics struct {
	submissions *prometheus.CounterVec
	delivery    *prometheus.HistogramVec
}

// NewFormMetrics registers the form metrics on the provided registerer.
func NewFormMetrics(reg prometheus.Registerer) *FormMetrics {
	if reg == nil {
		return &FormMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "form_submissions_total",
		Help: "Form submissions by form and outcome.",
	}, []string{"form", "outcome"})
	delivery := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notification_delivery_seconds",
		Help:    "Duration of outbound notification sends in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"form"})
	reg.MustRegister(submissions, delivery)
	return &FormMetrics{
		submissions: submissions,
		delivery:    delivery,
	}
}

// IncSubmission increments the counter for the named form and outcome.
func (m *FormMetrics) IncSubmission(form, outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(form), normalizeLabel(outcome)).Inc()
}

// ObserveDelivery records how long a notification send took.
func (m *FormMetrics) ObserveDelivery(form string, duration time.Duration) {
	if m == nil || m.delivery == nil {
		return
	}
	m.delivery.WithLabelValues(normalizeLabel(form)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
