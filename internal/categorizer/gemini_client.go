package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-2.0-flash-lite"

// GeminiProvider calls Google Gemini through the generative-ai-go SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider opens a Gemini client for apiKey.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Complete sends the prompt and the description as a single content part, the
// way the Gemini endpoint expects instructions for this model.
func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, text string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0)
	model.SetTopP(0.1)
	model.SetMaxOutputTokens(50)

	resp, err := model.GenerateContent(ctx, genai.Text(systemPrompt+"\n\n"+text))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

// WarmUp sends a tiny request so the TLS connection is open before real traffic.
func (p *GeminiProvider) WarmUp(ctx context.Context) error {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(10)
	_, err := model.GenerateContent(ctx, genai.Text("Hello"))
	return err
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates in Gemini response", ErrResponseFormat)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text part in Gemini response", ErrResponseFormat)
	}
	return sb.String(), nil
}
