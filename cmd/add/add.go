// Package add records a transaction typed as free text.
package add

import (
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
)

var overrides common.Overrides

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Record a transaction from a free-text description",
	Long: `Record a transaction from a free-text description such as "coffee 50" or "salary 85000 credit".
The amount is taken from the text; the type and category come from your common
transactions, the cache or the configured LLM provider.`,
	Example: `  quickspend add coffee 50
  quickspend add "groceries at migros" --amount 84.30 --category Groceries
  quickspend add refund 20 --credit`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&overrides.Amount, "amount", "a", "", "Amount to record instead of the one found in the text")
	Cmd.Flags().BoolVar(&overrides.Credit, "credit", false, "Record as money received")
	Cmd.Flags().StringVarP(&overrides.Category, "category", "c", "", "Category name to record instead of the resolved one")
	Cmd.Flags().BoolVar(&overrides.Refresh, "refresh", false, "Ignore a cached answer for this description")
}

func run(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	tx, err := common.NewRecording(app).Record(cmd.Context(), strings.Join(args, " "), overrides)
	if err != nil {
		return err
	}
	common.PrintTransaction(cmd.OutOrStdout(), tx, app.GetConfig().Budget.Currency)
	return nil
}
