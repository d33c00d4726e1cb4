// Package remove deletes a single transaction from the ledger.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/root"
)

// Cmd represents the delete command
var Cmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a transaction by id",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    run,
}

func run(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	if err := app.GetLedger().Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
