// Package shell records transactions typed one per line until end of input.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/container"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/report"
)

const help = `Type a transaction such as "coffee 50" and press enter.
  :undo          delete the last transaction recorded in this session
  :summary       show this month's summary
  :claude on|off prefer Claude or Gemini
  :help          show this help
  :quit          leave (end of input works too)`

// Cmd represents the shell command
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Record transactions interactively",
	Long: `Record transactions interactively, one per line. Provider connections are
warmed up in the background when the shell starts, and the categorization cache
lives for the whole session.`,
	Args: cobra.NoArgs,
	RunE: run,
}

type session struct {
	app       *container.Container
	recording *common.Recording
	out       io.Writer
	last      []string
}

func run(cmd *cobra.Command, _ []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	start := time.Now()
	warm := app.StartBackground(ctx)
	go func() {
		select {
		case <-warm:
			app.GetLogger().Debug("Providers warmed up",
				logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
		case <-ctx.Done():
		}
	}()

	s := &session{app: app, recording: common.NewRecording(app), out: cmd.OutOrStdout()}
	fmt.Fprintln(s.out, help)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		if done := s.handle(ctx, strings.TrimSpace(scanner.Text())); done {
			break
		}
	}
	fmt.Fprintln(s.out)
	return scanner.Err()
}

// handle processes one line and reports whether the session should end.
// Errors are printed so that one bad line does not end the session.
func (s *session) handle(ctx context.Context, line string) bool {
	switch {
	case line == "":
		return false
	case line == ":quit" || line == ":q" || line == "exit":
		return true
	case line == ":help":
		fmt.Fprintln(s.out, help)
	case line == ":undo":
		s.undo(ctx)
	case line == ":summary":
		s.summary(ctx)
	case strings.HasPrefix(line, ":claude"):
		s.claude(strings.TrimSpace(strings.TrimPrefix(line, ":claude")))
	case strings.HasPrefix(line, ":"):
		fmt.Fprintf(s.out, "Unknown command %s, type :help\n", line)
	default:
		tx, err := s.recording.Record(ctx, line, common.Overrides{})
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return false
		}
		s.last = append(s.last, tx.ID)
		common.PrintTransaction(s.out, tx, s.app.GetConfig().Budget.Currency)
	}
	return false
}

func (s *session) undo(ctx context.Context) {
	if len(s.last) == 0 {
		fmt.Fprintln(s.out, "Nothing to undo.")
		return
	}
	id := s.last[len(s.last)-1]
	if err := s.app.GetLedger().Delete(ctx, id); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.last = s.last[:len(s.last)-1]
	fmt.Fprintf(s.out, "Deleted %s\n", id)
}

func (s *session) summary(ctx context.Context) {
	txs, err := s.app.GetLedger().List(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	sum := report.Summarize(txs, report.SummaryOptions{
		Period:    report.PeriodMonthly,
		Reference: time.Now(),
		Budget:    s.app.MonthlyBudget(),
		Names:     s.app.GetCategories(),
	})
	if err := s.app.GetGenerator().RenderSummary(s.out, sum, report.FormatText); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *session) claude(arg string) {
	switch arg {
	case "on":
		s.app.SetUseClaude(true)
	case "off":
		s.app.SetUseClaude(false)
	default:
		fmt.Fprintln(s.out, "Usage: :claude on|off")
		return
	}
	fmt.Fprintf(s.out, "Claude %s\n", arg)
}
