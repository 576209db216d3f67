package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quizhub/class-notifier/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	MailSent        *prometheus.CounterVec
	MailFailed      *prometheus.CounterVec
	DispatchLatency *prometheus.HistogramVec
	BatchRecipients prometheus.Histogram
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MailSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Total number of successfully submitted notification mails.",
		}, []string{"kind"}),

		MailFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mail_failed_total",
			Help: "Total number of notification mails that failed composition or transport.",
		}, []string{"kind"}),

		DispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mail_dispatch_seconds",
			Help:    "Per-message latency from composition start to transport ack.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),

		BatchRecipients: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "batch_recipients",
			Help:    "Number of recipients resolved per class broadcast.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}

	reg.MustRegister(
		m.MailSent,
		m.MailFailed,
		m.DispatchLatency,
		m.BatchRecipients,
	)

	return m
}

// EngineHooks returns the metric callback functions expected by dispatch.Hooks.
// Centralises the prometheus observation calls so the engine stays metrics-agnostic.
func (m *Metrics) EngineHooks() (
	onSent func(domain.Kind, time.Duration),
	onFailed func(domain.Kind),
) {
	onSent = func(kind domain.Kind, latency time.Duration) {
		m.MailSent.WithLabelValues(string(kind)).Inc()
		m.DispatchLatency.WithLabelValues(string(kind)).Observe(latency.Seconds())
	}
	onFailed = func(kind domain.Kind) {
		m.MailFailed.WithLabelValues(string(kind)).Inc()
	}
	return
}

// ObserveBatchSize records the resolved roster size of one broadcast.
func (m *Metrics) ObserveBatchSize(n int) {
	m.BatchRecipients.Observe(float64(n))
}
