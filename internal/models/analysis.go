package models

// TransactionAnalysis is the interpretation of one free-text description.
// Amount is nil until extraction or a stored entry provides one.
type TransactionAnalysis struct {
	Description string          `json:"description" yaml:"description"`
	Amount      *float64        `json:"amount,omitempty" yaml:"amount,omitempty"`
	Type        TransactionType `json:"type" yaml:"type"`
	CategoryID  int             `json:"categoryId" yaml:"category_id"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty"`
}

// Clone returns a deep copy; the amount pointer is never shared.
func (a TransactionAnalysis) Clone() TransactionAnalysis {
	out := a
	out.Amount = CopyAmount(a.Amount)
	return out
}

// AmountOrZero dereferences Amount, treating nil as 0.
func (a TransactionAnalysis) AmountOrZero() float64 {
	if a.Amount == nil {
		return 0
	}
	return *a.Amount
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// CopyAmount returns a fresh pointer holding the same value, or nil.
func CopyAmount(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
