package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/quickspend/internal/currencyutils"
	"fjacquet/quickspend/internal/dateutils"
	"fjacquet/quickspend/internal/models"
)

// CategoryTotal is the spending of one category within a summary.
type CategoryTotal struct {
	CategoryID int             `json:"categoryId"`
	Name       string          `json:"name"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percent    decimal.Decimal `json:"percent"`
}

// BudgetStatus compares monthly debits with the configured budget.
type BudgetStatus struct {
	Monthly     decimal.Decimal `json:"monthly"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Over        bool            `json:"over"`
	DaysLeft    int             `json:"daysLeft"`
}

// Summary aggregates the transactions of one period.
type Summary struct {
	Period     Period          `json:"period"`
	Start      *time.Time      `json:"start,omitempty"`
	End        *time.Time      `json:"end,omitempty"`
	Count      int             `json:"count"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Net        decimal.Decimal `json:"net"`
	Budget     *BudgetStatus   `json:"budget,omitempty"`
	Categories []CategoryTotal `json:"categories"`
}

// SummaryOptions configures Summarize. Budget is only evaluated for the
// monthly period and when no search is active.
type SummaryOptions struct {
	Period    Period
	Reference time.Time
	Search    string
	Budget    decimal.Decimal
	Names     CategoryNamer
}

// Summarize totals debits and credits as sums of absolute amounts and breaks
// debits down by category, largest first.
func Summarize(txs []models.Transaction, opts SummaryOptions) Summary {
	ref := opts.Reference
	if ref.IsZero() {
		ref = time.Now()
	}
	period := opts.Period
	if period == "" {
		period = PeriodAll
	}

	selected := Query{Period: period, Reference: ref, Search: opts.Search}.Apply(txs, opts.Names)

	s := Summary{Period: period, Count: len(selected), Debit: decimal.Zero, Credit: decimal.Zero}
	if start, end, ok := period.Window(ref); ok {
		s.Start, s.End = &start, &end
	}

	byCategory := make(map[int]*CategoryTotal)
	for _, tx := range selected {
		amount := tx.AbsAmount()
		if !tx.IsDebit() {
			s.Credit = s.Credit.Add(amount)
			continue
		}
		s.Debit = s.Debit.Add(amount)

		ct, ok := byCategory[tx.CategoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: tx.CategoryID, Name: categoryName(tx, opts.Names), Total: decimal.Zero}
			byCategory[tx.CategoryID] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(amount)
	}
	s.Net = s.Credit.Sub(s.Debit)

	s.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		ct.Percent = currencyutils.Percent(ct.Total, s.Debit)
		s.Categories = append(s.Categories, *ct)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		a, b := s.Categories[i], s.Categories[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.CategoryID < b.CategoryID
	})

	if period == PeriodMonthly && opts.Budget.IsPositive() && opts.Search == "" {
		remaining := opts.Budget.Sub(s.Debit)
		s.Budget = &BudgetStatus{
			Monthly:     opts.Budget,
			Spent:       s.Debit,
			Remaining:   remaining,
			PercentUsed: currencyutils.Percent(s.Debit, opts.Budget),
			Over:        remaining.IsNegative(),
			DaysLeft:    dateutils.DaysLeftInMonth(ref),
		}
	}
	return s
}

func categoryName(tx models.Transaction, names CategoryNamer) string {
	if names != nil {
		return names.NameByID(tx.CategoryID)
	}
	if tx.Category != "" {
		return tx.Category
	}
	return models.UnknownCategoryName
}
