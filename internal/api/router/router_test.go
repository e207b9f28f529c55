package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpmiddleware "github.com/wolfman30/onboarding-assistant/internal/http/middleware"
	"github.com/wolfman30/onboarding-assistant/internal/observability/metrics"
	"github.com/wolfman30/onboarding-assistant/internal/onboarding"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

type echoGenerator struct{}

func (echoGenerator) GenerateNextMessage(_ context.Context, _ string, nextQuestion string) (string, error) {
	return "Next up: " + nextQuestion, nil
}

func (echoGenerator) GenerateEmail(_ context.Context, answerContext, _ string) (string, error) {
	return `{"subject":"Hello","body":"About ` + answerContext + `"}`, nil
}

func newTestRouter(t *testing.T, limiter *httpmiddleware.RateLimiter) http.Handler {
	t.Helper()

	logger := logging.Discard()
	reg := prometheus.NewRegistry()
	m := metrics.NewOnboardingMetrics(reg)
	chat := onboarding.NewChatService(onboarding.NewMemoryStore(time.Hour), echoGenerator{}, logger, onboarding.WithChatMetrics(m))
	email := onboarding.NewEmailService(echoGenerator{}, logger, m)

	cfg := &Config{
		Logger:             logger,
		OnboardingHandler:  onboarding.NewHandler(chat, email, logger),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
		RateLimiter:        limiter,
	}
	return New(cfg)
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterChatEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := post(router, "/chat", `{"userId":"router-user","message":"Hi"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = post(router, "/chat", `{"userId":"router-user","message":"Acme"}`)
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode chat response: %v", err)
	}
	if resp["message"] != "Next up: "+onboarding.Questions[1] {
		t.Fatalf("unexpected message %v", resp["message"])
	}
}

func TestRouterEmailEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := post(router, "/email", `{"context":"Acme sells widgets"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var resp struct {
		Email string `json:"email"`
		Draft struct {
			Subject string `json:"subject"`
		} `json:"draft"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode email response: %v", err)
	}
	if resp.Draft.Subject != "Hello" {
		t.Fatalf("expected parsed draft subject, got %+v", resp)
	}
}

func TestRouterQuestionsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/questions", nil))

	var resp map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode questions: %v", err)
	}
	if len(resp["questions"]) != len(onboarding.Questions) {
		t.Fatalf("expected %d questions, got %d", len(onboarding.Questions), len(resp["questions"]))
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	post(router, "/chat", `{"userId":"metrics-user","message":"hey"}`)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `onboarding_chat_turns_total{outcome="redirect",state="uninitialized"} 1`) {
		t.Fatalf("expected turn counter in metrics output, got:\n%s", rr.Body.String())
	}
}

func TestRouterRejectsWrongMethodAndContentType(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/chat", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("userId=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status %d, got %d", http.StatusUnsupportedMediaType, rr.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestRouterRateLimitsChat(t *testing.T) {
	limiter := httpmiddleware.NewRateLimiter(0.001, 1)
	defer limiter.Stop()
	router := newTestRouter(t, limiter)

	if rr := post(router, "/chat", `{"userId":"u","message":"hi"}`); rr.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rr.Code)
	}
	if rr := post(router, "/chat", `{"userId":"u","message":"x"}`); rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limit, got %d", rr.Code)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health must not be rate limited, got %d", rr.Code)
	}
}
