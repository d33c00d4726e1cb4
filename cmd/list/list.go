// Package list prints ledger transactions.
package list

import (
	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/report"
)

var (
	period string
	txType string
	sortBy string
	search string
	limit  int
	at     string
	format string
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transactions",
	Long: `List recorded transactions, newest first by default.
Periods are relative to --at (default now); a week runs Monday to Sunday.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&period, "period", "p", string(report.PeriodAll), "Period: today, weekly, monthly or all")
	Cmd.Flags().StringVarP(&txType, "type", "t", "all", "Transaction type: debit, credit or all")
	Cmd.Flags().StringVarP(&sortBy, "sort", "s", string(report.SortNewest), "Order: newest, oldest, highest or lowest")
	Cmd.Flags().StringVarP(&search, "search", "q", "", "Only transactions whose description or category contains this text")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of transactions to print (0 for all)")
	Cmd.Flags().StringVar(&at, "at", "", "Reference date for the period (e.g. 2026-03-14, yesterday)")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: text or json")
}

func run(cmd *cobra.Command, _ []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	q := report.Query{Search: search, Limit: limit}
	if q.Period, err = report.ParsePeriod(period); err != nil {
		return err
	}
	if q.Type, err = common.TypeFilter(txType); err != nil {
		return err
	}
	if q.Sort, err = report.ParseSortOrder(sortBy); err != nil {
		return err
	}
	if q.Reference, err = common.ReferenceTime(at); err != nil {
		return err
	}

	txs, err := app.GetLedger().List(cmd.Context())
	if err != nil {
		return err
	}
	return app.GetGenerator().RenderTransactions(cmd.OutOrStdout(), q.Apply(txs, app.GetCategories()), format)
}
