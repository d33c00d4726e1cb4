package container

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/internal/categorizer"
	"fjacquet/quickspend/internal/config"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

type stubProvider struct {
	name  string
	reply string
}

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) Complete(context.Context, string, string) (string, error) {
	return p.reply, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:      config.LogConfig{Level: "debug", Format: "text"},
		AI:       config.AIConfig{TimeoutMS: 1000, GeminiAPIKey: "g-key", WarmUp: true},
		Cache:    config.CacheConfig{BaseTTL: 15 * time.Minute, MaxTTL: 24 * time.Hour},
		Matching: config.MatchingConfig{FuzzyThreshold: 0.8},
		Data: config.DataConfig{
			Directory:      t.TempDir(),
			CategoriesFile: "categories.yaml",
			CommonFile:     "common.yaml",
			LedgerFile:     "ledger.db",
		},
		Budget: config.BudgetConfig{Monthly: 300, Currency: "INR"},
		CSV:    config.CSVConfig{Delimiter: ";"},
	}
}

func stubFactories(reply string) map[string]categorizer.ProviderFactory {
	return map[string]categorizer.ProviderFactory{
		categorizer.ProviderGemini: func(context.Context, string) (categorizer.Provider, error) {
			return stubProvider{name: categorizer.ProviderGemini, reply: reply}, nil
		},
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.ErrorContains(t, err, "configuration cannot be nil")
}

func TestNewContainer_WiresResolutionAndLedger(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewMockLogger()
	c, err := NewContainer(ctx, testConfig(t), WithLogger(logger), WithProviderFactories(stubFactories(`{"type":"debit","categoryId":4}`)))
	require.NoError(t, err)
	defer c.Close()

	assert.Same(t, logger, c.GetLogger())
	assert.Len(t, c.GetCategories().ListCategories(), len(models.DefaultCategories))

	analysis := c.GetResolver().Resolve(ctx, "metro 2.5", c.Credentials())
	assert.Equal(t, 4, analysis.CategoryID)
	assert.Equal(t, "Transportation", analysis.Category)
	assert.Equal(t, 1, c.GetCache().Len())

	tx, err := c.GetLedger().Record(ctx, "metro 2.5", analysis)
	require.NoError(t, err)
	list, err := c.GetLedger().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tx.ID, list[0].ID)
	assert.Equal(t, "2.5", list[0].Amount.String())
}

func TestContainer_StartBackgroundWarmsProviders(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, testConfig(t), WithLogger(logging.NewMockLogger()), WithProviderFactories(stubFactories(`{}`)))
	require.NoError(t, err)

	select {
	case <-c.StartBackground(ctx):
	case <-time.After(2 * time.Second):
		t.Fatal("warm-up did not finish")
	}
	assert.True(t, c.GetClientPool().IsWarm(categorizer.ProviderGemini))

	require.NoError(t, c.Close())
	assert.False(t, c.GetClientPool().IsWarm(categorizer.ProviderGemini))
}

func TestContainer_WarmUpDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.AI.WarmUp = false
	c, err := NewContainer(ctx, cfg, WithLogger(logging.NewMockLogger()), WithProviderFactories(stubFactories(`{}`)))
	require.NoError(t, err)
	defer c.Close()

	<-c.StartBackground(ctx)
	assert.False(t, c.GetClientPool().IsWarm(categorizer.ProviderGemini))
}

func TestContainer_CredentialsFollowPreference(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.ClaudeAPIKey = "c-key"
	c, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Credentials().UseClaude)
	c.SetUseClaude(true)
	creds := c.Credentials()
	assert.True(t, creds.UseClaude)
	assert.Equal(t, "c-key", creds.ClaudeAPIKey)
	assert.Equal(t, "300", c.MonthlyBudget().String())
}
