package onboarding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wolfman30/onboarding-assistant/internal/generation"
	"github.com/wolfman30/onboarding-assistant/internal/observability/metrics"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

// EmailGenerator drafts a marketing email from answer context.
type EmailGenerator interface {
	GenerateEmail(ctx context.Context, answerContext, previousEmail string) (string, error)
}

// EmailRequest is the body of POST /email. Context may be any JSON value,
// typically a list of AnswerPair.
type EmailRequest struct {
	Context       json.RawMessage `json:"context"`
	PreviousEmail string          `json:"previousEmail,omitempty"`
}

// EmailReply carries the raw model text plus the parsed draft when it is valid.
type EmailReply struct {
	Email string                 `json:"email"`
	Draft *generation.EmailDraft `json:"draft,omitempty"`
}

type EmailService struct {
	generator EmailGenerator
	logger    *logging.Logger
	metrics   *metrics.OnboardingMetrics
}

func NewEmailService(generator EmailGenerator, logger *logging.Logger, m *metrics.OnboardingMetrics) *EmailService {
	if generator == nil {
		panic("onboarding: email generator cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &EmailService{generator: generator, logger: logger, metrics: m}
}

// Draft validates the request, asks the generator for an email and checks
// the output shape. A draft that does not parse is still returned raw.
func (s *EmailService) Draft(ctx context.Context, req EmailRequest) (*EmailReply, error) {
	if isMissingContext(req.Context) {
		return nil, &ValidationError{Message: "Please provide context"}
	}
	answerContext, err := FormatEmailContext(req.Context)
	if err != nil {
		return nil, &ValidationError{Message: "Please provide context"}
	}

	raw, err := s.generator.GenerateEmail(ctx, answerContext, req.PreviousEmail)
	if err != nil {
		s.logger.Error("onboarding: failed to generate email", "error", err, "follow_up", req.PreviousEmail != "")
		return nil, fmt.Errorf("onboarding: generate email: %w", err)
	}

	reply := &EmailReply{Email: raw}
	draft, err := generation.ParseEmailDraft(raw)
	if err != nil {
		s.logger.Warn("onboarding: email draft did not match subject/body shape", "error", err)
		s.metrics.ObserveEmailDraft(false)
		return reply, nil
	}
	s.metrics.ObserveEmailDraft(true)
	reply.Draft = &draft
	return reply, nil
}
