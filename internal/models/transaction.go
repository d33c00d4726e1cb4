package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a persisted ledger record. It is never mutated once saved.
type Transaction struct {
	ID          string          `json:"id"`
	Input       string          `json:"input,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	CategoryID  int             `json:"categoryId"`
	Category    string          `json:"category,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// IsDebit reports whether the transaction is money spent.
func (t Transaction) IsDebit() bool {
	return t.Type != TransactionTypeCredit
}

// AbsAmount is the unsigned amount used by every total.
func (t Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}
