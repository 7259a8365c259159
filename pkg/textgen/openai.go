package textgen

import (
	"context"
	"fmt"
	"strings"

	"nexus-service/pkg/config"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI talks to any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// New returns an OpenAI generator for cfg, or Noop when no API key is set.
func New(cfg config.LLMConfig) Generator {
	if cfg.APIKey == "" {
		return Noop{}
	}
	return NewOpenAI(cfg)
}

// NewOpenAI builds a client against cfg.BaseURL (the public API when empty).
func NewOpenAI(cfg config.LLMConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	return &OpenAI{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Generate sends the prompt as a system and a user message and returns the
// first choice's trimmed content.
func (o *OpenAI) Generate(ctx context.Context, prompt Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		MaxTokens: o.maxTokens,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
