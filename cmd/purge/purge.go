// Package purge empties the ledger.
package purge

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/root"
)

var yes bool

// ErrNotConfirmed is returned when clear runs without --yes.
var ErrNotConfirmed = errors.New("refusing to delete every transaction without --yes")

// Cmd represents the clear command
var Cmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded transaction",
	Long:  "Delete every recorded transaction. Categories and common transactions are kept.",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
}

func run(cmd *cobra.Command, _ []string) error {
	if !yes {
		return ErrNotConfirmed
	}
	app, err := root.App()
	if err != nil {
		return err
	}
	n, err := app.GetLedger().Clear(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transactions\n", n)
	return nil
}
