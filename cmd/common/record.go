// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/quickspend/internal/categorizer"
	"fjacquet/quickspend/internal/container"
	"fjacquet/quickspend/internal/currencyutils"
	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
	"fjacquet/quickspend/internal/textutils"
)

type Resolver interface {
	Resolve(ctx context.Context, raw string, creds categorizer.Credentials) models.TransactionAnalysis
}

type Recorder interface {
	Record(ctx context.Context, raw string, analysis models.TransactionAnalysis) (models.Transaction, error)
}

type KeywordTracker interface {
	TrackKeyword(description string) error
}

type CategoryFinder interface {
	FindByName(name string) (models.Category, bool)
}

type CacheInvalidator interface {
	Delete(key string)
}

// Overrides replace parts of the resolved analysis with values given on the command line.
// Refresh drops a cached remote answer before resolving.
type Overrides struct {
	Amount   string
	Credit   bool
	Category string
	Refresh  bool
}

// Recording resolves a description and stores the result in the ledger.
type Recording struct {
	Resolver    Resolver
	Ledger      Recorder
	Keywords    KeywordTracker
	Categories  CategoryFinder
	Cache       CacheInvalidator
	Credentials func() categorizer.Credentials
	Logger      logging.Logger
}

// NewRecording wires a Recording from the application container.
func NewRecording(app *container.Container) *Recording {
	return &Recording{
		Resolver:    app.GetResolver(),
		Ledger:      app.GetLedger(),
		Keywords:    app.GetCommon(),
		Categories:  app.GetCategories(),
		Cache:       app.GetCache(),
		Credentials: app.Credentials,
		Logger:      app.GetLogger(),
	}
}

// Analyze resolves raw and applies the overrides without saving anything.
func (r *Recording) Analyze(ctx context.Context, raw string, ov Overrides) (models.TransactionAnalysis, error) {
	if ov.Refresh && r.Cache != nil {
		r.Cache.Delete(models.NormalizeKey(textutils.ExtractAmount(raw).CleanDescription))
	}
	var creds categorizer.Credentials
	if r.Credentials != nil {
		creds = r.Credentials()
	}
	analysis := r.Resolver.Resolve(ctx, raw, creds)
	return r.apply(analysis, ov)
}

// Record resolves raw, saves the transaction and counts the description for suggestions.
func (r *Recording) Record(ctx context.Context, raw string, ov Overrides) (models.Transaction, error) {
	if strings.TrimSpace(raw) == "" {
		return models.Transaction{}, &parsererror.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	analysis, err := r.Analyze(ctx, raw, ov)
	if err != nil {
		return models.Transaction{}, err
	}
	tx, err := r.Ledger.Record(ctx, raw, analysis)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}
	if r.Keywords != nil {
		if err := r.Keywords.TrackKeyword(tx.Description); err != nil {
			logging.OrDefault(r.Logger).WithError(err).Warn("Failed to track keyword",
				logging.Field{Key: logging.FieldDescription, Value: tx.Description})
		}
	}
	return tx, nil
}

func (r *Recording) apply(a models.TransactionAnalysis, ov Overrides) (models.TransactionAnalysis, error) {
	if ov.Amount != "" {
		amount, err := currencyutils.ParseAmount(ov.Amount)
		if err != nil {
			return a, &parsererror.ValidationError{Field: "amount", Value: ov.Amount, Reason: "not a number"}
		}
		a.Amount = models.Float64(amount.Abs().InexactFloat64())
	}
	if ov.Credit {
		a.Type = models.TransactionTypeCredit
	}
	if ov.Category != "" {
		if r.Categories == nil {
			return a, &parsererror.ValidationError{Field: "category", Value: ov.Category, Reason: "no category registry"}
		}
		c, ok := r.Categories.FindByName(ov.Category)
		if !ok {
			return a, &parsererror.ValidationError{Field: "category", Value: ov.Category, Reason: "unknown category"}
		}
		a.CategoryID = c.ID
		a.Category = c.Name
	}
	return a, nil
}

// PrintTransaction writes a one-line confirmation for a recorded transaction.
func PrintTransaction(w io.Writer, tx models.Transaction, currency string) {
	fmt.Fprintf(w, "Recorded %s %s in %s (%s)\n",
		tx.Description,
		currencyutils.FormatSigned(tx.Amount, currency, tx.IsDebit()),
		tx.Category,
		tx.ID)
}

// PrintAnalysis writes an analysis without saving it. A missing amount prints as "?".
func PrintAnalysis(w io.Writer, a models.TransactionAnalysis, currency string) {
	amount := "?"
	if a.Amount != nil {
		amount = currencyutils.FormatAmount(decimal.NewFromFloat(*a.Amount), currency)
	}
	fmt.Fprintf(w, "Description: %s\nAmount:      %s\nType:        %s\nCategory:    %s (%d)\n",
		a.Description, amount, a.Type, a.Category, a.CategoryID)
}
