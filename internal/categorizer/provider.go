package categorizer

import "context"

// Provider names as used in configuration and logs.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// Provider is a remote text-completion service. Complete sends systemPrompt as
// instructions and text as the user content and returns the raw model output.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, text string) (string, error)
}

// Warmer is implemented by providers that can open their connection ahead of
// the first real request.
type Warmer interface {
	WarmUp(ctx context.Context) error
}

// Credentials carries the API keys of one resolution request. Gemini is the
// default provider; UseClaude prefers Claude when its key is present.
type Credentials struct {
	GeminiAPIKey string
	ClaudeAPIKey string
	UseClaude    bool
}

type attempt struct {
	provider string
	apiKey   string
}

// plan lists the providers to try, in order. An empty plan means no remote call.
func (c Credentials) plan() []attempt {
	var out []attempt
	if c.UseClaude && c.ClaudeAPIKey != "" {
		out = append(out, attempt{provider: ProviderClaude, apiKey: c.ClaudeAPIKey})
	}
	if c.GeminiAPIKey != "" {
		out = append(out, attempt{provider: ProviderGemini, apiKey: c.GeminiAPIKey})
	}
	return out
}
