package metrics

import "github.com/prometheus/client_golang/prometheus"

// OnboardingMetrics exposes counters/histograms for chat turns and generation calls.
type OnboardingMetrics struct {
	turnsTotal        *prometheus.CounterVec
	completedTotal    prometheus.Counter
	generationTotal   *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	tokensTotal       *prometheus.CounterVec
	emailDraftsTotal  *prometheus.CounterVec
}

func NewOnboardingMetrics(reg prometheus.Registerer) *OnboardingMetrics {
	m := &OnboardingMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Chat turns handled, by session state and outcome",
		}, []string{"state", "outcome"}),
		completedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "chat",
			Name:      "completed_total",
			Help:      "Onboarding sessions that answered every question",
		}),
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Calls to the text generation provider",
		}, []string{"operation", "status"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "onboarding",
			Subsystem: "generation",
			Name:      "latency_seconds",
			Help:      "Latency of text generation calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "generation",
			Name:      "tokens_total",
			Help:      "Tokens consumed by generation calls",
		}, []string{"operation", "direction"}),
		emailDraftsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "onboarding",
			Subsystem: "email",
			Name:      "drafts_total",
			Help:      "Email drafts returned, by whether they parsed as subject/body JSON",
		}, []string{"valid"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.turnsTotal,
		m.completedTotal,
		m.generationTotal,
		m.generationLatency,
		m.tokensTotal,
		m.emailDraftsTotal,
	)
	return m
}

func (m *OnboardingMetrics) ObserveTurn(state, outcome string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(state, outcome).Inc()
}

func (m *OnboardingMetrics) ObserveCompletion() {
	if m == nil {
		return
	}
	m.completedTotal.Inc()
}

func (m *OnboardingMetrics) ObserveGeneration(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(operation, status).Inc()
	m.generationLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *OnboardingMetrics) ObserveTokens(operation string, input, output int32) {
	if m == nil {
		return
	}
	if input > 0 {
		m.tokensTotal.WithLabelValues(operation, "input").Add(float64(input))
	}
	if output > 0 {
		m.tokensTotal.WithLabelValues(operation, "output").Add(float64(output))
	}
}

func (m *OnboardingMetrics) ObserveEmailDraft(valid bool) {
	if m == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	m.emailDraftsTotal.WithLabelValues(label).Inc()
}
