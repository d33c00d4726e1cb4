package categorizer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// fakeProvider answers Complete with a canned reply or error.
type fakeProvider struct {
	name    string
	reply   string
	err     error
	delay   time.Duration
	release chan struct{}

	calls   atomic.Int32
	warmups atomic.Int32
	closed  atomic.Bool

	mu      sync.Mutex
	prompts []string
	texts   []string
}

func (f *fakeProvider) Name() string {
	return f.name
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, text string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, systemPrompt)
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	if f.delay > 0 {
		// Deliberately ignores ctx to prove the categorizer enforces its own timeout.
		time.Sleep(f.delay)
	}
	return f.reply, f.err
}

func (f *fakeProvider) WarmUp(ctx context.Context) error {
	f.warmups.Add(1)
	return nil
}

func (f *fakeProvider) Close() error {
	f.closed.Store(true)
	return nil
}

func (f *fakeProvider) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

// poolFor returns a ClientPool serving the given fakes regardless of API key.
func poolFor(providers ...*fakeProvider) *ClientPool {
	factories := make(map[string]ProviderFactory, len(providers))
	for _, p := range providers {
		factories[p.name] = func(context.Context, string) (Provider, error) {
			return p, nil
		}
	}
	return NewClientPool(factories, nil)
}
