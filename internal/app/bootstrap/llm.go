package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	appconfig "github.com/wolfman30/onboarding-assistant/internal/config"
	"github.com/wolfman30/onboarding-assistant/internal/generation"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

const (
	ProviderOpenAI    = "openai"
	ProviderBedrock   = "bedrock"
	ProviderAnthropic = "anthropic"
)

// BuildLLMClient returns the text generation client selected by LLM_PROVIDER.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (generation.LLMClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.LLMProvider {
	case ProviderOpenAI, "":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("bootstrap: OPENAI_API_KEY is required for the openai provider")
		}
		logger.Info("using openai generation provider", "model", cfg.OpenAIModel, "base_url", cfg.OpenAIBaseURL)
		return generation.NewOpenAIClientFromKey(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil

	case ProviderAnthropic:
		if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
			return nil, fmt.Errorf("bootstrap: ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		logger.Info("using anthropic generation provider", "model", cfg.AnthropicModel)
		return generation.NewAnthropicClientFromKey(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil

	case ProviderBedrock:
		if strings.TrimSpace(cfg.BedrockModelID) == "" {
			return nil, fmt.Errorf("bootstrap: BEDROCK_MODEL_ID is required for the bedrock provider")
		}
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		logger.Info("using bedrock generation provider", "model", cfg.BedrockModelID, "region", cfg.AWSRegion)
		return generation.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID), nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// ModelName returns the model configured for the selected provider, or ""
// when the adapter default applies.
func ModelName(cfg *appconfig.Config) string {
	if cfg == nil {
		return ""
	}
	switch cfg.LLMProvider {
	case ProviderOpenAI, "":
		return cfg.OpenAIModel
	case ProviderAnthropic:
		return cfg.AnthropicModel
	case ProviderBedrock:
		return cfg.BedrockModelID
	default:
		return ""
	}
}

// LoadAWSConfig builds the AWS SDK config, preferring static keys when both
// are set and falling back to the default credential chain otherwise.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, loaders...)
}
