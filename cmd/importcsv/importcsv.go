// Package importcsv loads transactions from a CSV file written by export.
package importcsv

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/ledger"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/parsererror"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import transactions from an exported CSV file",
	Long: `Import transactions from a CSV file produced by export, using the configured delimiter.
Rows whose id is already in the ledger are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0]) // #nosec G304 -- user-provided import file
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			app.GetLogger().WithError(cerr).Warn("Failed to close import file")
		}
	}()

	txs, err := app.GetExporter().Read(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	imported, skipped := 0, 0
	for _, tx := range txs {
		_, err := app.GetLedger().Get(ctx, tx.ID)
		switch {
		case err == nil:
			skipped++
			continue
		case !errors.Is(err, ledger.ErrTransactionNotFound):
			return err
		}
		if err := app.GetLedger().Save(ctx, tx); err != nil {
			var verr *parsererror.ValidationError
			if errors.As(err, &verr) {
				app.GetLogger().WithError(err).Warn("Skipping invalid row",
					logging.Field{Key: logging.FieldTransactionID, Value: tx.ID})
				skipped++
				continue
			}
			return err
		}
		imported++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions, skipped %d\n", imported, skipped)
	return nil
}
