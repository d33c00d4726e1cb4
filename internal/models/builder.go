package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionBuilder assembles a ledger Transaction. The first failing step is
// remembered and reported by Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
	now func() time.Time
}

// NewTransactionBuilder starts a debit in Miscellaneous with a zero amount.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Amount:     decimal.Zero,
			Type:       TransactionTypeDebit,
			CategoryID: MiscellaneousCategoryID,
		},
		now: time.Now,
	}
}

// FromAnalysis copies a resolver result. A nil amount is stored as 0.
func (b *TransactionBuilder) FromAnalysis(a TransactionAnalysis) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = a.Description
	b.tx.Amount = decimal.NewFromFloat(a.AmountOrZero())
	b.tx.Type = a.Type
	if a.CategoryID != 0 {
		b.tx.CategoryID = a.CategoryID
	}
	b.tx.Category = a.Category
	return b
}

func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if _, err := uuid.Parse(id); err != nil {
		b.err = fmt.Errorf("invalid transaction id %q: %w", id, err)
		return b
	}
	b.tx.ID = id
	return b
}

func (b *TransactionBuilder) WithInput(raw string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Input = raw
	return b
}

func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = strings.TrimSpace(description)
	return b
}

func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	return b
}

func (b *TransactionBuilder) WithAmountFromFloat(amount float64) *TransactionBuilder {
	return b.WithAmount(decimal.NewFromFloat(amount))
}

func (b *TransactionBuilder) WithCategory(id int, name string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if id <= 0 {
		b.err = fmt.Errorf("category id must be positive, got %d", id)
		return b
	}
	b.tx.CategoryID = id
	b.tx.Category = name
	return b
}

func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if ts.IsZero() {
		b.err = errors.New("timestamp cannot be zero")
		return b
	}
	b.tx.Timestamp = ts
	return b
}

func (b *TransactionBuilder) AsDebit() *TransactionBuilder {
	if b.err == nil {
		b.tx.Type = TransactionTypeDebit
	}
	return b
}

func (b *TransactionBuilder) AsCredit() *TransactionBuilder {
	if b.err == nil {
		b.tx.Type = TransactionTypeCredit
	}
	return b
}

// Build validates the transaction and fills the id (uuid v7) and timestamp when unset.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}
	if b.tx.Description == "" {
		return Transaction{}, errors.New("description is required")
	}
	if !b.tx.Type.IsValid() {
		return Transaction{}, fmt.Errorf("invalid transaction type %q", b.tx.Type)
	}

	if b.tx.Timestamp.IsZero() {
		b.tx.Timestamp = b.now()
	}
	if b.tx.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return Transaction{}, fmt.Errorf("failed to generate transaction id: %w", err)
		}
		b.tx.ID = id.String()
	}
	return b.tx, nil
}
