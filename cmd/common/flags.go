package common

import (
	"fmt"
	"time"

	"fjacquet/quickspend/internal/dateutils"
	"fjacquet/quickspend/internal/models"
)

// ReferenceTime parses the --at flag. Empty means now.
func ReferenceTime(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	t, err := dateutils.ParseDateString(at, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value: %w", err)
	}
	return t, nil
}

// TypeFilter parses the --type flag. "" and "all" keep both types.
func TypeFilter(s string) (models.TransactionType, error) {
	switch s {
	case "", "all":
		return "", nil
	case string(models.TransactionTypeDebit), string(models.TransactionTypeCredit):
		return models.TransactionType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q (want debit, credit or all)", s)
	}
}
