package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContactMetrics exposes counters/histograms for the contact form flow.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	rateLimitedTotal prometheus.Counter
	dispatchLatency  prometheus.Histogram
}

// NewContactMetrics registers the contact collectors on reg, or the default
// registerer when reg is nil.
func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "submissions_total",
			Help:      "Contact form submissions by outcome",
		}, []string{"outcome"}),
		rateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "rate_limited_total",
			Help:      "Contact form requests rejected by the rate limiter",
		}),
		dispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "contact",
			Name:      "dispatch_latency_seconds",
			Help:      "Latency of email provider sends",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.rateLimitedTotal, m.dispatchLatency)
	return m
}

// ObserveSubmission counts one finished submission by outcome label.
func (m *ContactMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRateLimited counts a request rejected by the limiter.
func (m *ContactMetrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Inc()
}

// ObserveDispatchLatency records how long a provider send took.
func (m *ContactMetrics) ObserveDispatchLatency(seconds float64) {
	if m == nil {
		return
	}
	m.dispatchLatency.Observe(seconds)
}
