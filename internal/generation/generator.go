package generation

import (
	"context"
	"strings"
	"time"

	"github.com/wolfman30/onboarding-assistant/internal/observability/metrics"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	OpNextMessage = "next_message"
	OpEmail       = "email"

	defaultCallTimeout = 30 * time.Second
)

var generationTracer = otel.Tracer("onboarding.internal.generation")

// Generator phrases onboarding questions and drafts marketing emails through an LLMClient.
type Generator struct {
	client  LLMClient
	model   string
	timeout time.Duration
	logger  *logging.Logger
	metrics *metrics.OnboardingMetrics
	tracer  trace.Tracer
}

type Option func(*Generator)

// WithModel overrides the adapter's default model for every request.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = strings.TrimSpace(model)
	}
}

// WithTimeout bounds each outbound call. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithMetrics(m *metrics.OnboardingMetrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

func NewGenerator(client LLMClient, logger *logging.Logger, opts ...Option) *Generator {
	if client == nil {
		panic("generation: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	g := &Generator{
		client:  client,
		timeout: defaultCallTimeout,
		logger:  logger,
		tracer:  generationTracer,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateNextMessage asks the model to phrase nextQuestion given the Q/A history.
func (g *Generator) GenerateNextMessage(ctx context.Context, history, nextQuestion string) (string, error) {
	return g.complete(ctx, OpNextMessage, LLMRequest{
		System: []string{nextMessageSystemPrompt},
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: nextMessagePrompt(history, nextQuestion)},
		},
		MaxTokens:   nextMessageMaxTokens,
		Temperature: nextMessageTemperature,
	})
}

// GenerateEmail drafts a subject/body email from the answer context. When
// previousEmail is set the model is asked for a follow-up variant. The raw
// model text is returned; see ParseEmailDraft for validation.
func (g *Generator) GenerateEmail(ctx context.Context, answerContext, previousEmail string) (string, error) {
	return g.complete(ctx, OpEmail, LLMRequest{
		System: []string{emailSystemPrompt},
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: emailUserPrompt(answerContext, previousEmail)},
		},
		Temperature: -1,
	})
}

func (g *Generator) complete(ctx context.Context, op string, req LLMRequest) (string, error) {
	ctx, span := g.tracer.Start(ctx, "generation."+op)
	defer span.End()

	if req.Model == "" {
		req.Model = g.model
	}
	span.SetAttributes(
		attribute.String("onboarding.generation.op", op),
		attribute.String("onboarding.generation.model", req.Model),
	)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Complete(callCtx, req)
	elapsed := time.Since(start).Seconds()
	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		g.metrics.ObserveGeneration(op, "error", elapsed)
		g.logger.Error("generation: provider call failed", "op", op, "error", err)
		return "", &GenerationError{Op: op, Err: err}
	}

	g.metrics.ObserveGeneration(op, "ok", elapsed)
	g.metrics.ObserveTokens(op, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Int("onboarding.generation.input_tokens", int(resp.Usage.InputTokens)),
			attribute.Int("onboarding.generation.output_tokens", int(resp.Usage.OutputTokens)),
		)
	}
	g.logger.Debug("generation: completed", "op", op, "stop_reason", resp.StopReason, "duration_s", elapsed)
	return strings.TrimSpace(resp.Text), nil
}
