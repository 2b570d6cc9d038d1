// Package dialog builds the LLM client the host agent runtime drives the
// conversation with. The session core never calls the model itself; it only
// hands the runtime its tool catalog and instruction context.
package dialog

import (
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model   string        `envconfig:"MODEL" split_words:"true" default:"gpt-4.1-nano"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// NewClient creates an OpenAI SDK client for the dialog endpoint. Returns
// nil when no API key is configured.
func NewClient(cfg Config) *openaisdk.Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
