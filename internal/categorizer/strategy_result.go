package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/quickspend/internal/models"
)

// StrategyResult records one strategy attempt.
type StrategyResult struct {
	Strategy string
	Analysis models.TransactionAnalysis
	Found    bool
	Error    error
}

// StrategyResults aggregates the attempts of a single resolution.
type StrategyResults struct {
	Results []StrategyResult
}

func (sr *StrategyResults) add(r StrategyResult) {
	sr.Results = append(sr.Results, r)
}

// Errors returns every error encountered, prefixed with the strategy name.
func (sr StrategyResults) Errors() []error {
	var errs []error
	for _, r := range sr.Results {
		if r.Error != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", r.Strategy, r.Error))
		}
	}
	return errs
}

// Summary renders the attempts as "name:status" pairs.
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		status := "failed"
		if r.Found {
			status = "success"
		} else if r.Error == nil {
			status = "no_match"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", r.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
