package models

// TransactionType tells whether money left (debit) or entered (credit) the account.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// ParseTransactionType lower-cases s and maps anything that is not "credit" to debit.
func ParseTransactionType(s string) TransactionType {
	if TransactionType(normalize(s)) == TransactionTypeCredit {
		return TransactionTypeCredit
	}
	return TransactionTypeDebit
}

// IsValid reports whether t is one of the two known types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// MiscellaneousCategoryID is the catch-all category every unresolved transaction lands in.
const (
	MiscellaneousCategoryID   = 15
	MiscellaneousCategoryName = "Miscellaneous"
	UnknownCategoryName       = "Unknown"
)

// UnknownTransactionDescription replaces an empty description on the last-resort path.
const UnknownTransactionDescription = "Unknown transaction"

// DefaultCategories are the reserved categories 1 to 15.
var DefaultCategories = []Category{
	{ID: 1, Name: "Housing & Utilities"},
	{ID: 2, Name: "Groceries"},
	{ID: 3, Name: "Food"},
	{ID: 4, Name: "Transportation"},
	{ID: 5, Name: "Health & Wellness"},
	{ID: 6, Name: "Personal Care"},
	{ID: 7, Name: "Shopping & Lifestyle"},
	{ID: 8, Name: "Entertainment & Leisure"},
	{ID: 9, Name: "Family & Dependents"},
	{ID: 10, Name: "Work & Education"},
	{ID: 11, Name: "Finance & Fees"},
	{ID: 12, Name: "Savings & Investments"},
	{ID: 13, Name: "Insurance"},
	{ID: 14, Name: "Gifts & Donations"},
	{ID: MiscellaneousCategoryID, Name: MiscellaneousCategoryName},
}

// File permissions used by the local stores.
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionExport    = 0644
)
