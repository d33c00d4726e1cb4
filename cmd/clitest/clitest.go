// Package clitest runs the quickspend command tree in-process against a
// temporary data directory and a stub provider.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/categorizer"
	"fjacquet/quickspend/internal/container"
	"fjacquet/quickspend/internal/ledger"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

// StubProvider answers every request with Reply, or fails with Err.
type StubProvider struct {
	Reply   string
	Err     error
	calls   atomic.Int32
	warmups atomic.Int32
}

func (p *StubProvider) Name() string { return categorizer.ProviderGemini }

func (p *StubProvider) Complete(context.Context, string, string) (string, error) {
	p.calls.Add(1)
	return p.Reply, p.Err
}

func (p *StubProvider) WarmUp(context.Context) error {
	p.warmups.Add(1)
	return nil
}

func (p *StubProvider) Calls() int   { return int(p.calls.Load()) }
func (p *StubProvider) Warmups() int { return int(p.warmups.Load()) }

// Env is one test's view of the command tree.
type Env struct {
	DataDir  string
	Logger   *logging.MockLogger
	Provider *StubProvider
}

// Setup registers cmds on the root command and points it at a fresh data
// directory, a Gemini key and the stub provider. Warm-up is disabled unless
// the test sets QUICKSPEND_AI_WARM_UP itself afterwards.
func Setup(t *testing.T, cmds ...*cobra.Command) *Env {
	t.Helper()
	env := &Env{
		DataDir:  t.TempDir(),
		Logger:   logging.NewMockLogger(),
		Provider: &StubProvider{Reply: `{"type":"debit","categoryId":15}`},
	}

	t.Setenv("QUICKSPEND_DATA_DIRECTORY", env.DataDir)
	t.Setenv("QUICKSPEND_LOG_LEVEL", "info")
	t.Setenv("QUICKSPEND_AI_WARM_UP", "false")
	t.Setenv("QUICKSPEND_AI_USE_CLAUDE", "false")
	t.Setenv("QUICKSPEND_CSV_DELIMITER", ",")
	t.Setenv("QUICKSPEND_BUDGET_CURRENCY", "INR")
	t.Setenv("QUICKSPEND_BUDGET_MONTHLY", "0")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CLAUDE_API_KEY", "")

	root.ContainerOptions = []container.Option{
		container.WithLogger(env.Logger),
		container.WithProviderFactories(map[string]categorizer.ProviderFactory{
			categorizer.ProviderGemini: func(context.Context, string) (categorizer.Provider, error) {
				return env.Provider, nil
			},
		}),
	}
	for _, c := range cmds {
		if !registered(c) {
			root.Cmd.AddCommand(c)
		}
	}

	t.Cleanup(func() {
		_ = root.Close()
		root.ContainerOptions = nil
		logging.SetLogger(nil)
	})
	return env
}

func registered(c *cobra.Command) bool {
	for _, existing := range root.Cmd.Commands() {
		if existing == c {
			return true
		}
	}
	return false
}

// Run executes the command tree with args and returns everything it printed.
func (e *Env) Run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.RunWithInput(t, "", args...)
}

// RunWithInput is Run with input as standard input.
func (e *Env) RunWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root.ResetFlags(root.Cmd)

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetIn(strings.NewReader(input))
	root.Cmd.SetArgs(args)

	err := root.Cmd.Execute()
	if cerr := root.Close(); err == nil {
		err = cerr
	}
	return out.String(), err
}

// Transactions reads the ledger directly, newest first.
func (e *Env) Transactions(t *testing.T) []models.Transaction {
	t.Helper()
	l, err := ledger.Open(context.Background(), filepath.Join(e.DataDir, "ledger.db"), e.Logger)
	require.NoError(t, err)
	defer l.Close()

	txs, err := l.List(context.Background())
	require.NoError(t, err)
	return txs
}

// Seed saves txs straight into the ledger.
func (e *Env) Seed(t *testing.T, txs ...models.Transaction) {
	t.Helper()
	l, err := ledger.Open(context.Background(), filepath.Join(e.DataDir, "ledger.db"), e.Logger)
	require.NoError(t, err)
	defer l.Close()

	for _, tx := range txs {
		require.NoError(t, l.Save(context.Background(), tx))
	}
}
