package categorizer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fjacquet/quickspend/internal/logging"
)

// ProviderFactory builds a Provider for an API key.
type ProviderFactory func(ctx context.Context, apiKey string) (Provider, error)

type pooledClient struct {
	apiKey   string
	provider Provider
	warm     bool
}

// ClientPool holds one client per provider name and remembers which ones have
// been warmed up. A client is rebuilt when its API key changes.
type ClientPool struct {
	mu        sync.Mutex
	factories map[string]ProviderFactory
	clients   map[string]*pooledClient
	logger    logging.Logger

	warmTimeout time.Duration
}

// NewClientPool returns a pool that builds providers with the given factories,
// keyed by provider name.
func NewClientPool(factories map[string]ProviderFactory, logger logging.Logger) *ClientPool {
	f := make(map[string]ProviderFactory, len(factories))
	for name, factory := range factories {
		f[name] = factory
	}
	return &ClientPool{
		factories:   f,
		clients:     make(map[string]*pooledClient),
		logger:      logging.OrDefault(logger),
		warmTimeout: 10 * time.Second,
	}
}

// DefaultFactories wires the Gemini and Claude clients with the given models.
// An empty claudeBaseURL targets Anthropic.
func DefaultFactories(geminiModel, claudeModel, claudeBaseURL string) map[string]ProviderFactory {
	return map[string]ProviderFactory{
		ProviderGemini: func(ctx context.Context, apiKey string) (Provider, error) {
			return NewGeminiProvider(ctx, apiKey, geminiModel)
		},
		ProviderClaude: func(_ context.Context, apiKey string) (Provider, error) {
			return NewClaudeProvider(apiKey, claudeModel, claudeBaseURL)
		},
	}
}

// Provider returns the client for name, building it on first use or when apiKey
// differs from the one it was built with.
func (p *ClientPool) Provider(ctx context.Context, name, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, ErrNoCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[name]; ok {
		if c.apiKey == apiKey {
			return c.provider, nil
		}
		closeProvider(c.provider)
		delete(p.clients, name)
	}

	factory, ok := p.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	provider, err := factory(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", name, err)
	}
	p.clients[name] = &pooledClient{apiKey: apiKey, provider: provider}
	return provider, nil
}

// WarmUp sends a minimal request through the named client once. Later calls for
// the same client are no-ops.
func (p *ClientPool) WarmUp(ctx context.Context, name, apiKey string) error {
	provider, err := p.Provider(ctx, name, apiKey)
	if err != nil {
		return err
	}
	if p.IsWarm(name) {
		return nil
	}

	if w, ok := provider.(Warmer); ok {
		warmCtx, cancel := context.WithTimeout(ctx, p.warmTimeout)
		defer cancel()
		if err := w.WarmUp(warmCtx); err != nil {
			return fmt.Errorf("failed to warm up %s: %w", name, err)
		}
	}

	p.mu.Lock()
	if c, ok := p.clients[name]; ok && c.provider == provider {
		c.warm = true
	}
	p.mu.Unlock()
	return nil
}

// IsWarm reports whether the named client has completed a warm-up.
func (p *ClientPool) IsWarm(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.clients[name]
	return ok && c.warm
}

// Preload warms every provider that has a key, in the background. The returned
// channel is closed once all warm-ups have finished; callers are free to ignore it.
func (p *ClientPool) Preload(ctx context.Context, creds Credentials) <-chan struct{} {
	done := make(chan struct{})
	keys := map[string]string{
		ProviderGemini: creds.GeminiAPIKey,
		ProviderClaude: creds.ClaudeAPIKey,
	}

	go func() {
		defer close(done)
		g, gctx := errgroup.WithContext(ctx)
		for name, key := range keys {
			if key == "" {
				continue
			}
			g.Go(func() error {
				start := time.Now()
				if err := p.WarmUp(gctx, name, key); err != nil {
					p.logger.WithError(err).Debug("Provider warm-up failed",
						logging.Field{Key: logging.FieldProvider, Value: name})
					return nil
				}
				p.logger.Debug("Provider warmed up",
					logging.Field{Key: logging.FieldProvider, Value: name},
					logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
				return nil
			})
		}
		_ = g.Wait()
	}()
	return done
}

// Reset drops every client and warm flag. Use it after credentials change.
func (p *ClientPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, c := range p.clients {
		closeProvider(c.provider)
		delete(p.clients, name)
	}
}

func closeProvider(provider Provider) {
	if c, ok := provider.(io.Closer); ok {
		_ = c.Close()
	}
}
