package cache

import (
	"context"
	"time"

	"fjacquet/quickspend/internal/logging"
)

// Cleaner is anything with expirable entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor sweeps registered caches on a fixed interval until stopped.
type Janitor struct {
	caches []Cleaner
	logger logging.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

func NewJanitor(logger logging.Logger, caches ...Cleaner) *Janitor {
	return &Janitor{caches: caches, logger: logging.OrDefault(logger)}
}

// Start runs the sweep loop in the background. A non-positive interval disables it.
func (j *Janitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 || j.done != nil {
		return
	}
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Sweep cleans every cache once and returns the number of entries removed.
func (j *Janitor) Sweep() int {
	removed := 0
	for _, c := range j.caches {
		removed += c.CleanExpired()
	}
	if removed > 0 {
		j.logger.Debug("Removed expired cache entries", logging.Field{Key: logging.FieldCount, Value: removed})
	}
	return removed
}

// Stop ends the sweep loop and waits for it to exit.
func (j *Janitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
	j.cancel, j.done = nil, nil
}
