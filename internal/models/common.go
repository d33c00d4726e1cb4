package models

// CommonTransaction is a user-registered description with a fixed interpretation.
// Key is the normalized description. Zero CategoryID means "resolve from Category".
type CommonTransaction struct {
	Key         string          `yaml:"key" json:"key"`
	Description string          `yaml:"description" json:"description"`
	Amount      *float64        `yaml:"amount,omitempty" json:"amount,omitempty"`
	Type        TransactionType `yaml:"type" json:"type"`
	CategoryID  int             `yaml:"category_id,omitempty" json:"categoryId,omitempty"`
	Category    string          `yaml:"category,omitempty" json:"category,omitempty"`
}

// Analysis converts the entry into a TransactionAnalysis without resolving anything.
func (c CommonTransaction) Analysis() TransactionAnalysis {
	desc := c.Description
	if desc == "" {
		desc = c.Key
	}
	return TransactionAnalysis{
		Description: desc,
		Amount:      CopyAmount(c.Amount),
		Type:        ParseTransactionType(string(c.Type)),
		CategoryID:  c.CategoryID,
		Category:    c.Category,
	}
}

// KeywordFrequency counts how often a description was entered.
type KeywordFrequency struct {
	Description string `yaml:"description" json:"description"`
	Count       int    `yaml:"count" json:"count"`
}
