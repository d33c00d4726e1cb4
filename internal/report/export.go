package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

const csvTimestampLayout = time.RFC3339Nano

// csvRow is the column layout of exported ledgers.
type csvRow struct {
	ID          string `csv:"id"`
	Timestamp   string `csv:"timestamp"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Type        string `csv:"type"`
	CategoryID  int    `csv:"category_id"`
	Category    string `csv:"category"`
	Input       string `csv:"input"`
}

// CSVExporter writes and reads ledger CSV files with a fixed delimiter.
type CSVExporter struct {
	delimiter rune
	logger    logging.Logger
}

func NewCSVExporter(delimiter rune, logger logging.Logger) *CSVExporter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVExporter{delimiter: delimiter, logger: logging.OrDefault(logger)}
}

// Write encodes txs to w, header included. Amounts and timestamps keep full precision.
func (e *CSVExporter) Write(w io.Writer, txs []models.Transaction) error {
	rows := make([]csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, csvRow{
			ID:          tx.ID,
			Timestamp:   tx.Timestamp.Format(csvTimestampLayout),
			Description: tx.Description,
			Amount:      tx.Amount.String(),
			Type:        string(tx.Type),
			CategoryID:  tx.CategoryID,
			Category:    tx.Category,
			Input:       tx.Input,
		})
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ExportFile writes txs to path, creating its directory when needed.
func (e *CSVExporter) ExportFile(path string, txs []models.Transaction) error {
	logger := e.logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(txs)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(e.delimiter)},
	)
	logger.Info("Exporting transactions to CSV file")

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionExport)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := e.Write(file, txs); err != nil {
		logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return err
	}
	logger.Info("Successfully wrote transactions to CSV file")
	return nil
}

// Read decodes a file produced by Write back into transactions.
func (e *CSVExporter) Read(r io.Reader) ([]models.Transaction, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = e.delimiter

	var rows []csvRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.transaction()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (r csvRow) transaction() (models.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}
	ts, err := time.Parse(csvTimestampLayout, r.Timestamp)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid timestamp %q: %w", r.Timestamp, err)
	}

	b := models.NewTransactionBuilder().
		WithID(r.ID).
		WithInput(r.Input).
		WithDescription(r.Description).
		WithAmount(amount).
		WithCategory(r.CategoryID, r.Category).
		WithTimestamp(ts)
	if models.ParseTransactionType(r.Type) == models.TransactionTypeCredit {
		b.AsCredit()
	}
	return b.Build()
}
