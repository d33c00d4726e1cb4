// Package analyze shows how a description would be recorded without saving it.
package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/quickspend/cmd/common"
	"fjacquet/quickspend/cmd/root"
	"fjacquet/quickspend/internal/report"
)

var (
	format  string
	refresh bool
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Resolve a description without recording it",
	Long: `Resolve a description exactly as add would, print the result and leave the ledger untouched.
Remote results are still cached.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: text or json")
	Cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore a cached answer for this description")
}

func run(cmd *cobra.Command, args []string) error {
	app, err := root.App()
	if err != nil {
		return err
	}
	analysis, err := common.NewRecording(app).Analyze(cmd.Context(), strings.Join(args, " "), common.Overrides{Refresh: refresh})
	if err != nil {
		return err
	}

	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	case report.FormatText:
		common.PrintAnalysis(cmd.OutOrStdout(), analysis, app.GetConfig().Budget.Currency)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
