// Package ledger is the append-only store of saved transactions, backed by SQLite.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

// ErrTransactionNotFound is returned by Get and Delete for an unknown id.
var ErrTransactionNotFound = errors.New("transaction not found")

const storeName = "ledger"

// timestampLayout is fixed width so that created_at sorts chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Ledger persists transactions. Safe for concurrent use.
type Ledger struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open creates the database file and its directory if needed and applies
// pending migrations.
func Open(ctx context.Context, path string, logger logging.Logger) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return nil, &parsererror.StoreError{Store: storeName, Op: "create directory", Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &parsererror.StoreError{Store: storeName, Op: "open", Path: path, Err: err}
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &parsererror.StoreError{Store: storeName, Op: "ping", Path: path, Err: err}
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, &parsererror.StoreError{Store: storeName, Op: "migrate", Path: path, Err: err}
	}

	return &Ledger{db: db, path: path, logger: logging.OrDefault(logger)}, nil
}

func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Save inserts tx. The id must be set and unique.
func (l *Ledger) Save(ctx context.Context, tx models.Transaction) error {
	if tx.ID == "" {
		return &parsererror.ValidationError{Field: "transaction id", Reason: "must not be empty"}
	}
	if !tx.Type.IsValid() {
		return &parsererror.ValidationError{Field: "transaction type", Value: string(tx.Type), Reason: "must be debit or credit"}
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO transactions (id, input, description, amount, type, category_id, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Input, tx.Description, tx.Amount.String(), string(tx.Type),
		tx.CategoryID, tx.Category, tx.Timestamp.UTC().Format(timestampLayout))
	if err != nil {
		return l.storeErr("insert", err)
	}

	l.logger.Debug("Transaction saved",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.String()},
		logging.Field{Key: logging.FieldCategoryID, Value: tx.CategoryID})
	return nil
}

// Record builds a transaction from a resolver result and saves it.
func (l *Ledger) Record(ctx context.Context, raw string, analysis models.TransactionAnalysis) (models.Transaction, error) {
	tx, err := models.NewTransactionBuilder().
		FromAnalysis(analysis).
		WithInput(raw).
		Build()
	if err != nil {
		return models.Transaction{}, err
	}
	if err := l.Save(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

const selectColumns = `SELECT id, input, description, amount, type, category_id, category, created_at FROM transactions`

// List returns every transaction, newest first.
func (l *Ledger) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := l.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, l.storeErr("list", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, l.storeErr("list", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, l.storeErr("list", err)
	}
	return out, nil
}

func (l *Ledger) Get(ctx context.Context, id string) (models.Transaction, error) {
	row := l.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if err != nil {
		return models.Transaction{}, l.storeErr("get", err)
	}
	return tx, nil
}

func (l *Ledger) Delete(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return l.storeErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return l.storeErr("delete", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	l.logger.Debug("Transaction deleted", logging.Field{Key: logging.FieldTransactionID, Value: id})
	return nil
}

// Clear removes every transaction and returns how many were deleted.
func (l *Ledger) Clear(ctx context.Context) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return 0, l.storeErr("clear", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, l.storeErr("clear", err)
	}
	l.logger.Info("Ledger cleared", logging.Field{Key: logging.FieldCount, Value: n})
	return n, nil
}

func (l *Ledger) storeErr(op string, err error) error {
	return &parsererror.StoreError{Store: storeName, Op: op, Path: l.path, Err: err}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (models.Transaction, error) {
	var (
		tx        models.Transaction
		amount    string
		txType    string
		createdAt string
	)
	if err := s.Scan(&tx.ID, &tx.Input, &tx.Description, &amount, &txType, &tx.CategoryID, &tx.Category, &createdAt); err != nil {
		return models.Transaction{}, err
	}

	var err error
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "amount", Value: amount, Err: err}
	}
	if tx.Timestamp, err = time.Parse(timestampLayout, createdAt); err != nil {
		return models.Transaction{}, &parsererror.ParseError{Field: "created_at", Value: createdAt, Err: err}
	}
	tx.Type = models.ParseTransactionType(txType)
	return tx, nil
}
