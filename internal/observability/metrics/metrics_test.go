package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestOnboardingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOnboardingMetrics(reg)
	m.ObserveTurn("active", "next_question")
	m.ObserveTurn("active", "next_question")
	m.ObserveCompletion()
	m.ObserveGeneration("next_message", "ok", 0.4)
	m.ObserveTokens("next_message", 120, 30)
	m.ObserveTokens("next_message", 0, 0)
	m.ObserveEmailDraft(true)
	m.ObserveEmailDraft(false)

	if got := testutil.ToFloat64(m.turnsTotal.WithLabelValues("active", "next_question")); got != 2 {
		t.Fatalf("expected 2 turns, got %v", got)
	}
	if got := testutil.ToFloat64(m.completedTotal); got != 1 {
		t.Fatalf("expected 1 completion, got %v", got)
	}
	if got := testutil.ToFloat64(m.tokensTotal.WithLabelValues("next_message", "input")); got != 120 {
		t.Fatalf("expected 120 input tokens, got %v", got)
	}
	if got := testutil.ToFloat64(m.emailDraftsTotal.WithLabelValues("false")); got != 1 {
		t.Fatalf("expected 1 invalid draft, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	var latency *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "onboarding_generation_latency_seconds" {
			latency = f
		}
	}
	if latency == nil {
		t.Fatalf("expected latency histogram to be registered")
	}
	if count := latency.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
		t.Fatalf("expected 1 latency sample, got %d", count)
	}
}

func TestOnboardingMetricsDefaultRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	prev := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = reg
	defer func() { prometheus.DefaultRegisterer = prev }()

	m := NewOnboardingMetrics(nil)
	m.ObserveTurn("uninitialized", "redirect")
	if got := testutil.CollectAndCount(reg, "onboarding_chat_turns_total"); got != 1 {
		t.Fatalf("expected turns metric on default registerer, got %d", got)
	}
}

func TestOnboardingMetricsNilSafe(t *testing.T) {
	var m *OnboardingMetrics
	m.ObserveTurn("active", "next_question")
	m.ObserveCompletion()
	m.ObserveGeneration("email", "error", 0.1)
	m.ObserveTokens("email", 1, 1)
	m.ObserveEmailDraft(true)
}
