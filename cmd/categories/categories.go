// Package categories manages the category registry.
package categories

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/parsererror"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "List and edit categories",
	Long: `List and edit categories. Ids 1 to 15 are reserved for the built-in categories;
new categories get the next free id above them. Miscellaneous (15) cannot be removed.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, c := range app.GetCategories().ListCategories() {
			fmt.Fprintf(tw, "%d\t%s\n", c.ID, c.Name)
		}
		return tw.Flush()
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		c, err := app.GetCategories().Add(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%d)\n", c.Name, c.ID)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		if err := app.GetCategories().Rename(id, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %d to %s\n", id, strings.TrimSpace(name))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a category",
	Long:  "Remove a category. Transactions already recorded keep their category id and show as Unknown.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := root.App()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.GetCategories().Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed category %d\n", id)
		return nil
	},
}

func init() {
	Cmd.AddCommand(listCmd, addCmd, renameCmd, removeCmd)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, &parsererror.ValidationError{Field: "category id", Value: s, Reason: "must be a positive integer"}
	}
	return id, nil
}
