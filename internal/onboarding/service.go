package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/onboarding-assistant/internal/observability/metrics"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

// MessageGenerator phrases the next onboarding question.
type MessageGenerator interface {
	GenerateNextMessage(ctx context.Context, history, nextQuestion string) (string, error)
}

// ChatReply is the body returned for a chat turn. Questions, Answers and
// IsComplete are only set once the last answer has been recorded.
type ChatReply struct {
	Message    string   `json:"message"`
	Questions  []string `json:"questions,omitempty"`
	Answers    []string `json:"answers,omitempty"`
	IsComplete bool     `json:"isComplete,omitempty"`
}

// ChatService drives the per-user onboarding state machine.
type ChatService struct {
	store     SessionStore
	generator MessageGenerator
	questions []string
	locks     *userLocks
	logger    *logging.Logger
	metrics   *metrics.OnboardingMetrics
	now       func() time.Time

	consumeTurnOnFailure bool
}

type ChatOption func(*ChatService)

// WithConsumeTurnOnFailure controls whether a failed phrasing call still
// moves the user on to the next question (the default).
func WithConsumeTurnOnFailure(consume bool) ChatOption {
	return func(s *ChatService) {
		s.consumeTurnOnFailure = consume
	}
}

func WithChatMetrics(m *metrics.OnboardingMetrics) ChatOption {
	return func(s *ChatService) {
		s.metrics = m
	}
}

// WithQuestions replaces the default question list.
func WithQuestions(questions []string) ChatOption {
	return func(s *ChatService) {
		s.questions = append([]string(nil), questions...)
	}
}

func WithClock(now func() time.Time) ChatOption {
	return func(s *ChatService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewChatService(store SessionStore, generator MessageGenerator, logger *logging.Logger, opts ...ChatOption) *ChatService {
	if store == nil {
		panic("onboarding: session store cannot be nil")
	}
	if generator == nil {
		panic("onboarding: message generator cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &ChatService{
		store:                store,
		generator:            generator,
		questions:            QuestionList(),
		locks:                newUserLocks(),
		logger:               logger,
		now:                  time.Now,
		consumeTurnOnFailure: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.questions) == 0 {
		panic("onboarding: question list cannot be empty")
	}
	return s
}

// Questions returns a copy of the configured question list.
func (s *ChatService) Questions() []string {
	return append([]string(nil), s.questions...)
}

// HandleMessage processes one inbound chat message for userID. Turns for the
// same user are serialized. Blank messages are ordinary input: they are
// redirected before activation and recorded as answers after it.
func (s *ChatService) HandleMessage(ctx context.Context, userID, message string) (*ChatReply, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &ValidationError{Message: missingChatFieldsMessage}
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	session, err := GetOrCreate(ctx, s.store, userID)
	if err != nil {
		s.metrics.ObserveTurn("unknown", "store_error")
		return nil, err
	}

	step := Transition(session, message, s.questions)
	logger := s.logger.With("user_id", userID, "from", step.From.String(), "action", step.Action.String())

	switch step.Action {
	case ActionRedirect, ActionWelcome:
		if err := s.save(ctx, userID, session); err != nil {
			s.metrics.ObserveTurn(step.From.String(), "store_error")
			return nil, err
		}
		s.metrics.ObserveTurn(step.From.String(), step.Action.String())
		logger.Debug("onboarding: turn handled", "question_index", session.CurrentQuestion)
		return &ChatReply{Message: step.Reply}, nil

	case ActionComplete:
		answers := append([]string(nil), session.Answers...)
		if err := s.store.Delete(ctx, userID); err != nil {
			s.metrics.ObserveTurn(step.From.String(), "store_error")
			return nil, fmt.Errorf("onboarding: erase completed session: %w", err)
		}
		s.metrics.ObserveTurn(step.From.String(), step.Action.String())
		s.metrics.ObserveCompletion()
		logger.Info("onboarding: completed", "answers", len(answers))
		return &ChatReply{
			Message:    CompletionMessage,
			Questions:  s.Questions(),
			Answers:    answers,
			IsComplete: true,
		}, nil

	default:
		text, genErr := s.generator.GenerateNextMessage(ctx, step.History, step.NextQuestion)
		if genErr != nil {
			if !s.consumeTurnOnFailure {
				session.CurrentQuestion = step.FromIndex
			}
			if err := s.save(ctx, userID, session); err != nil {
				logger.Error("onboarding: failed to save session after generation error", "error", err)
			}
			s.metrics.ObserveTurn(step.From.String(), "generation_error")
			logger.Error("onboarding: failed to phrase next question",
				"error", genErr,
				"question_index", step.FromIndex,
				"turn_consumed", s.consumeTurnOnFailure,
			)
			return nil, fmt.Errorf("onboarding: phrase question %d: %w", step.FromIndex, genErr)
		}
		if err := s.save(ctx, userID, session); err != nil {
			s.metrics.ObserveTurn(step.From.String(), "store_error")
			return nil, err
		}
		s.metrics.ObserveTurn(step.From.String(), step.Action.String())
		logger.Debug("onboarding: turn handled", "question_index", session.CurrentQuestion)
		return &ChatReply{Message: text}, nil
	}
}

func (s *ChatService) save(ctx context.Context, userID string, session *Session) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, userID, session); err != nil {
		return fmt.Errorf("onboarding: save session: %w", err)
	}
	return nil
}
