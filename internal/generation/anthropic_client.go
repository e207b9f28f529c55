package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 1024
)

type anthropicMessagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicClient uses the native Messages API.
type AnthropicClient struct {
	api   anthropicMessagesAPI
	model string
}

func NewAnthropicClient(api anthropicMessagesAPI, model string) *AnthropicClient {
	if api == nil {
		panic("generation: anthropic messages client cannot be nil")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicClient{api: api, model: model}
}

func NewAnthropicClientFromKey(apiKey, model string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewAnthropicClient(&client.Messages, model)
}

func (c *AnthropicClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	model := req.Model
	if strings.TrimSpace(model) == "" {
		model = c.model
	}

	var system []anthropic.TextBlockParam
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		system = append(system, anthropic.TextBlockParam{Text: block})
	}

	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		switch msg.Role {
		case ChatRoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case ChatRoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case ChatRoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return LLMResponse{}, fmt.Errorf("generation: unsupported role %q", msg.Role)
		}
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}
	if req.Temperature >= 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	msg, err := c.api.New(ctx, params)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("generation: anthropic message failed: %w", err)
	}
	if msg == nil {
		return LLMResponse{}, fmt.Errorf("generation: anthropic returned nil message: %w", ErrEmptyCompletion)
	}

	var builder strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return LLMResponse{}, fmt.Errorf("generation: anthropic response had no text blocks: %w", ErrEmptyCompletion)
	}

	return LLMResponse{
		Text:       text,
		StopReason: string(msg.StopReason),
		Usage: TokenUsage{
			InputTokens:  int32(msg.Usage.InputTokens),
			OutputTokens: int32(msg.Usage.OutputTokens),
			TotalTokens:  int32(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
