// Package container wires quickspend's dependencies from a Config. Commands
// receive everything they need from a Container instead of building it.
package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/quickspend/internal/cache"
	"fjacquet/quickspend/internal/categorizer"
	"fjacquet/quickspend/internal/config"
	"fjacquet/quickspend/internal/ledger"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/report"
	"fjacquet/quickspend/internal/store"
)

// Container holds the application's long-lived components. Fields are private;
// use the getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	categories *store.CategoryRegistry
	common     *store.CommonTransactionStore
	cache      *cache.CategorizationCache
	janitor    *cache.Janitor
	pool       *categorizer.ClientPool
	resolver   *categorizer.Resolver
	ledger     *ledger.Ledger
	generator  *report.Generator
	exporter   *report.CSVExporter
}

type options struct {
	logger    logging.Logger
	factories map[string]categorizer.ProviderFactory
}

// Option overrides a default dependency, mostly for tests.
type Option func(*options)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProviderFactories replaces the Gemini and Claude client constructors.
func WithProviderFactories(f map[string]categorizer.ProviderFactory) Option {
	return func(o *options) { o.factories = f }
}

// NewContainer creates and wires all application dependencies. The ledger
// database is opened, and migrated, immediately.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = cfg.NewLogger()
	}
	factories := o.factories
	if factories == nil {
		factories = categorizer.DefaultFactories(cfg.AI.GeminiModel, cfg.AI.ClaudeModel, cfg.AI.ClaudeBaseURL)
	}

	categories := store.NewCategoryRegistry(cfg.DataPath(cfg.Data.CategoriesFile), logger)
	common := store.NewCommonTransactionStore(cfg.DataPath(cfg.Data.CommonFile), logger)
	analysisCache := cache.New(
		cache.WithTTL(cfg.Cache.BaseTTL, cfg.Cache.MaxTTL),
		cache.WithCapacity(cfg.Cache.Capacity),
	)
	pool := categorizer.NewClientPool(factories, logger)
	resolver := categorizer.NewResolver(common, categories, analysisCache, pool, logger,
		categorizer.WithFuzzyThreshold(cfg.Matching.FuzzyThreshold),
		categorizer.WithRemoteTimeout(cfg.AI.Timeout()),
	)

	l, err := ledger.Open(ctx, cfg.DataPath(cfg.Data.LedgerFile), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}

	logger.Debug("Container initialized",
		logging.Field{Key: "data_dir", Value: cfg.DataDir()},
		logging.Field{Key: logging.FieldProvider, Value: preferredProvider(cfg)})

	return &Container{
		logger:     logger,
		config:     cfg,
		categories: categories,
		common:     common,
		cache:      analysisCache,
		janitor:    cache.NewJanitor(logger, analysisCache),
		pool:       pool,
		resolver:   resolver,
		ledger:     l,
		generator:  report.NewGenerator(cfg.Budget.Currency, logger),
		exporter:   report.NewCSVExporter(delimiter(cfg.CSV.Delimiter), logger),
	}, nil
}

func delimiter(s string) rune {
	for _, r := range s {
		return r
	}
	return ','
}

func preferredProvider(cfg *config.Config) string {
	if cfg.AI.UseClaude {
		return categorizer.ProviderClaude
	}
	return categorizer.ProviderGemini
}

// Credentials returns the provider keys and preference from the configuration.
func (c *Container) Credentials() categorizer.Credentials {
	return categorizer.Credentials{
		GeminiAPIKey: c.config.AI.GeminiAPIKey,
		ClaudeAPIKey: c.config.AI.ClaudeAPIKey,
		UseClaude:    c.config.AI.UseClaude,
	}
}

// StartBackground starts the cache janitor and, when enabled, warms up the
// provider connections. The returned channel closes when warm-up is done.
func (c *Container) StartBackground(ctx context.Context) <-chan struct{} {
	c.janitor.Start(ctx, c.config.Cache.CleanupInterval)
	if !c.config.AI.WarmUp {
		done := make(chan struct{})
		close(done)
		return done
	}
	return c.pool.Preload(ctx, c.Credentials())
}

// SetUseClaude switches the preferred provider for the rest of the session.
func (c *Container) SetUseClaude(use bool) {
	c.config.AI.UseClaude = use
}

// MonthlyBudget is the configured budget as a decimal.
func (c *Container) MonthlyBudget() decimal.Decimal {
	return decimal.NewFromFloat(c.config.Budget.Monthly)
}

func (c *Container) GetLogger() logging.Logger                { return c.logger }
func (c *Container) GetConfig() *config.Config                { return c.config }
func (c *Container) GetCategories() *store.CategoryRegistry   { return c.categories }
func (c *Container) GetCommon() *store.CommonTransactionStore { return c.common }
func (c *Container) GetCache() *cache.CategorizationCache     { return c.cache }
func (c *Container) GetClientPool() *categorizer.ClientPool   { return c.pool }
func (c *Container) GetResolver() *categorizer.Resolver       { return c.resolver }
func (c *Container) GetLedger() *ledger.Ledger                { return c.ledger }
func (c *Container) GetGenerator() *report.Generator          { return c.generator }
func (c *Container) GetExporter() *report.CSVExporter         { return c.exporter }

// Close stops background work and releases the clients and the database.
func (c *Container) Close() error {
	c.janitor.Stop()
	c.pool.Reset()
	var err error
	if c.ledger != nil {
		err = errors.Join(err, c.ledger.Close())
	}
	return err
}
