package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/quickspend/internal/models"
)

// SortOrder orders a transaction listing.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortHighest, SortLowest:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want newest, oldest, highest or lowest)", s)
	}
}

// CategoryNamer resolves the current display name of a category id.
type CategoryNamer interface {
	NameByID(id int) string
}

// Query filters and orders ledger transactions. The zero value lists
// everything, newest first. An empty Type keeps both debits and credits.
type Query struct {
	Period    Period
	Reference time.Time
	Type      models.TransactionType
	Sort      SortOrder
	Search    string
	Limit     int
}

// Apply returns the matching transactions in the requested order. The input
// slice is not modified. With names set, the search also matches the current
// category name.
func (q Query) Apply(txs []models.Transaction, names CategoryNamer) []models.Transaction {
	ref := q.Reference
	if ref.IsZero() {
		ref = time.Now()
	}
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !q.Period.Contains(tx.Timestamp, ref) {
			continue
		}
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if needle != "" && !matches(tx, needle, names) {
			continue
		}
		out = append(out, tx)
	}

	sortTransactions(out, q.Sort)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matches(tx models.Transaction, needle string, names CategoryNamer) bool {
	if strings.Contains(strings.ToLower(tx.Description), needle) {
		return true
	}
	category := tx.Category
	if names != nil {
		category = names.NameByID(tx.CategoryID)
	}
	return strings.Contains(strings.ToLower(category), needle)
}

func sortTransactions(txs []models.Transaction, order SortOrder) {
	var less func(a, b models.Transaction) bool
	switch order {
	case SortOldest:
		less = func(a, b models.Transaction) bool { return a.Timestamp.Before(b.Timestamp) }
	case SortHighest:
		less = func(a, b models.Transaction) bool { return a.AbsAmount().GreaterThan(b.AbsAmount()) }
	case SortLowest:
		less = func(a, b models.Transaction) bool { return a.AbsAmount().LessThan(b.AbsAmount()) }
	default:
		less = func(a, b models.Transaction) bool { return a.Timestamp.After(b.Timestamp) }
	}
	sort.SliceStable(txs, func(i, j int) bool { return less(txs[i], txs[j]) })
}
