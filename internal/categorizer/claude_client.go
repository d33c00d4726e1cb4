package categorizer

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultClaudeModel   = "claude-3-haiku-20240307"
	DefaultClaudeBaseURL = "https://api.anthropic.com/v1/"
)

// ClaudeProvider calls Anthropic Claude through its OpenAI-compatible
// chat-completions endpoint.
type ClaudeProvider struct {
	client *openai.Client
	model  string
}

// NewClaudeProvider builds a client for apiKey. An empty baseURL targets Anthropic.
func NewClaudeProvider(apiKey, model, baseURL string) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	if baseURL == "" {
		baseURL = DefaultClaudeBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &ClaudeProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (p *ClaudeProvider) Name() string {
	return ProviderClaude
}

func (p *ClaudeProvider) Complete(ctx context.Context, systemPrompt, text string) (string, error) {
	return p.chat(ctx, 64, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
}

func (p *ClaudeProvider) WarmUp(ctx context.Context) error {
	_, err := p.chat(ctx, 10, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: "Hello"},
	})
	return err
}

func (p *ClaudeProvider) chat(ctx context.Context, maxTokens int, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: maxTokens,
		// A zero temperature is dropped by omitempty; the smallest float is sent as 0.
		Temperature: math.SmallestNonzeroFloat32,
		Messages:    messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty Claude response", ErrResponseFormat)
	}
	return resp.Choices[0].Message.Content, nil
}
