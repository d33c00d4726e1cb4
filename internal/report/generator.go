// Package report filters, summarizes, renders and exports ledger transactions.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/quickspend/internal/currencyutils"
	"fjacquet/quickspend/internal/dateutils"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

// Output formats understood by Generator.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Generator renders summaries and listings for the terminal.
type Generator struct {
	currency string
	logger   logging.Logger
}

// NewGenerator returns a Generator printing amounts in currency (an ISO code).
func NewGenerator(currency string, logger logging.Logger) *Generator {
	return &Generator{currency: currency, logger: logging.OrDefault(logger)}
}

// RenderSummary writes s to w as text or json.
func (g *Generator) RenderSummary(w io.Writer, s Summary, format string) error {
	switch format {
	case FormatJSON:
		return g.writeJSON(w, s)
	case FormatText, "":
		return g.summaryText(w, s)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// RenderTransactions writes a listing of txs to w as text or json.
func (g *Generator) RenderTransactions(w io.Writer, txs []models.Transaction, format string) error {
	switch format {
	case FormatJSON:
		if txs == nil {
			txs = []models.Transaction{}
		}
		return g.writeJSON(w, txs)
	case FormatText, "":
		return g.transactionsText(w, txs)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

func (g *Generator) summaryText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	title := "All time"
	if s.Start != nil && s.End != nil {
		title = fmt.Sprintf("%s (%s to %s)", capitalize(string(s.Period)),
			dateutils.ToISODate(*s.Start), dateutils.ToISODate(*s.End))
	}
	fmt.Fprintf(tw, "%s\t%d transactions\n", title, s.Count)
	fmt.Fprintf(tw, "Outgoing\t%s\n", currencyutils.FormatSigned(s.Debit, g.currency, true))
	fmt.Fprintf(tw, "Incoming\t%s\n", currencyutils.FormatSigned(s.Credit, g.currency, false))

	if b := s.Budget; b != nil {
		state := "Remaining"
		if b.Over {
			state = "Over budget"
		}
		fmt.Fprintf(tw, "Budget\t%s\n", currencyutils.FormatAmount(b.Monthly, g.currency))
		fmt.Fprintf(tw, "%s\t%s (%s%% used, %d days left)\n", state,
			currencyutils.FormatAmount(b.Remaining.Abs(), g.currency), b.PercentUsed.StringFixed(0), b.DaysLeft)
	}

	if len(s.Categories) > 0 {
		fmt.Fprintln(tw, "\t")
		fmt.Fprintln(tw, "Category\tSpent\tShare\tCount")
		for _, c := range s.Categories {
			fmt.Fprintf(tw, "%s\t%s\t%s%%\t%d\n", c.Name,
				currencyutils.FormatAmount(c.Total, g.currency), c.Percent.StringFixed(1), c.Count)
		}
	}
	return tw.Flush()
}

func (g *Generator) transactionsText(w io.Writer, txs []models.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tDescription\tCategory\tAmount")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			dateutils.FormatDateTime(tx.Timestamp.Local()),
			tx.Description,
			tx.Category,
			currencyutils.FormatSigned(tx.Amount, g.currency, tx.IsDebit()))
	}
	return tw.Flush()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
