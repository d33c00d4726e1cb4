// Package summary prints totals, the budget position and a per-category breakdown.
package summary

import (
	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/report"
)

var (
	period string
	search string
	at     string
	format string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize spending for a period",
	Long: `Summarize spending for a period: money out, money in, the net balance and the
largest categories. For the monthly period, without --search, the configured
monthly budget is compared with what was spent.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&period, "period", "p", string(report.PeriodMonthly), "Period: today, weekly, monthly or all")
	Cmd.Flags().StringVarP(&search, "search", "q", "", "Only transactions whose description or category contains this text")
	Cmd.Flags().StringVar(&at, "at", "", "Reference date for the period (e.g. 2026-03-14, yesterday)")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: text or json")
}

func run(cmd *cobra.Command, _ []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	opts := report.SummaryOptions{
		Search: search,
		Budget: app.MonthlyBudget(),
		Names:  app.GetCategories(),
	}
	if opts.Period, err = report.ParsePeriod(period); err != nil {
		return err
	}
	if opts.Reference, err = common.ReferenceTime(at); err != nil {
		return err
	}

	txs, err := app.GetLedger().List(cmd.Context())
	if err != nil {
		return err
	}
	return app.GetGenerator().RenderSummary(cmd.OutOrStdout(), report.Summarize(txs, opts), format)
}
