// Package commontx manages common transactions, the descriptions that are
// resolved locally without asking a provider.
package commontx

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/currencyutils"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

var (
	category string
	amount   string
	txType   string
)

// Cmd represents the common command
var Cmd = &cobra.Command{
	Use:   "common",
	Short: "Manage common transactions",
	Long: `Manage common transactions. A description registered here, such as "rent" or
"coffee", is always recorded with the same type and category, and with the stored
amount when the text has none. Similar spellings match as well.`,
}

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Register or replace a common transaction",
	Example: `  quickspend common add coffee --category Food
  quickspend common add rent --category "Housing & Utilities" --amount 1800
  quickspend common add salary --type credit --category "Work & Education"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		description := strings.Join(args, " ")

		c, ok := app.GetCategories().FindByName(category)
		if !ok {
			return &parsererror.ValidationError{Field: "category", Value: category, Reason: "unknown category"}
		}
		entry := models.CommonTransaction{
			Description: models.NormalizeKey(description),
			CategoryID:  c.ID,
			Category:    c.Name,
		}
		if entry.Type, err = common.TypeFilter(txType); err != nil || entry.Type == "" {
			return &parsererror.ValidationError{Field: "type", Value: txType, Reason: "must be debit or credit"}
		}
		if amount != "" {
			value, err := currencyutils.ParseAmount(amount)
			if err != nil {
				return &parsererror.ValidationError{Field: "amount", Value: amount, Reason: "not a number"}
			}
			entry.Amount = models.Float64(value.Abs().InexactFloat64())
		}

		if err := app.GetCommon().Put(description, entry); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved common transaction %q as %s in %s\n", entry.Description, entry.Type, entry.Category)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <description>",
	Short: "Remove a common transaction",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		description := strings.Join(args, " ")
		removed, err := app.GetCommon().Remove(description)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no common transaction named %q", models.NormalizeKey(description))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed common transaction %q\n", models.NormalizeKey(description))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List common transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		entries := app.GetCommon().All()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No common transactions.")
			return nil
		}
		currency := app.GetConfig().Budget.Currency
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DESCRIPTION\tTYPE\tCATEGORY\tAMOUNT")
		for _, e := range entries {
			name := e.Category
			if e.CategoryID > 0 {
				name = app.GetCategories().NameByID(e.CategoryID)
			}
			value := "-"
			if e.Amount != nil {
				value = currencyutils.FormatAmount(decimal.NewFromFloat(*e.Amount), currency)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Description, e.Type, name, value)
		}
		return tw.Flush()
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show frequent descriptions worth registering",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		suggestions := app.GetCommon().SuggestedKeywords()
		if len(suggestions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No suggestions yet.")
			return nil
		}
		for _, s := range suggestions {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d times)\n", s.Description, s.Count)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&category, "category", "c", models.MiscellaneousCategoryName, "Category name")
	addCmd.Flags().StringVarP(&amount, "amount", "a", "", "Default amount when the text has none")
	addCmd.Flags().StringVarP(&txType, "type", "t", string(models.TransactionTypeDebit), "Transaction type: debit or credit")

	Cmd.AddCommand(addCmd, removeCmd, listCmd, suggestCmd)
}
