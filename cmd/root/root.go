// Package root contains the root command and the container shared by every subcommand.
package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fjacquet/quickspend/internal/config"
	"fjacquet/quickspend/internal/container"
	"fjacquet/quickspend/internal/logging"
)

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "quickspend",
		Short: "Log expenses from free text and let an LLM categorize them.",
		Long: `quickspend records expenses typed as plain text, such as "coffee 50" or "uber 230.50".
Known descriptions are matched locally; anything else is categorized by Gemini or Claude.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}

	// ConfigFile overrides the config.yaml search.
	ConfigFile string
	LogLevel   string
	DataDir    string
	UseClaude  bool

	// ContainerOptions are passed to every container the root command builds.
	ContainerOptions []container.Option

	app *container.Container
)

// ErrNotInitialized is returned by App outside of a command run.
var ErrNotInitialized = errors.New("application container not initialized")

func init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&ConfigFile, "config", "", "Config file (default $HOME/.quickspend/config.yaml)")
	flags.StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&DataDir, "data-dir", "", "Directory holding categories, common transactions and the ledger")
	flags.BoolVar(&UseClaude, "claude", false, "Prefer Claude over Gemini for categorization")
}

// App returns the container built for the running command.
func App() (*container.Container, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := Close(); err != nil {
		return err
	}
	config.LoadEnv(logging.GetLogger())

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if DataDir != "" {
		cfg.Data.Directory = DataDir
	}
	if UseClaude {
		cfg.AI.UseClaude = true
	}

	c, err := container.NewContainer(cmd.Context(), cfg, ContainerOptions...)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	logging.SetLogger(c.GetLogger())
	app = c
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return Close()
}

// Close releases the container of the last run. Cobra skips the post-run hook
// when a command fails, so main calls it after Execute as well.
func Close() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// ResetFlags restores every flag of cmd and its subcommands to its default value,
// so the command tree can be executed more than once in the same process.
func ResetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		ResetFlags(sub)
	}
}
