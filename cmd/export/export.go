// Package export writes the ledger to CSV.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/report"
)

var (
	output string
	period string
	at     string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions to CSV",
	Long: `Export transactions to CSV, oldest first, using the configured delimiter.
Without --output the CSV is written to standard output.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	Cmd.Flags().StringVarP(&period, "period", "p", string(report.PeriodAll), "Period: today, weekly, monthly or all")
	Cmd.Flags().StringVar(&at, "at", "", "Reference date for the period")
}

func run(cmd *cobra.Command, _ []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	q := report.Query{Sort: report.SortOldest}
	if q.Period, err = report.ParsePeriod(period); err != nil {
		return err
	}
	if q.Reference, err = common.ReferenceTime(at); err != nil {
		return err
	}

	txs, err := app.GetLedger().List(cmd.Context())
	if err != nil {
		return err
	}
	txs = q.Apply(txs, nil)

	if output == "" {
		return app.GetExporter().Write(cmd.OutOrStdout(), txs)
	}
	if err := app.GetExporter().ExportFile(output, txs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), output)
	return nil
}
