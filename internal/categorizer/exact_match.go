package categorizer

import (
	"context"

	"fjacquet/quickspend/internal/models"
)

// ExactMatchStrategy looks the normalized description up in the common-transaction store.
type ExactMatchStrategy struct {
	common     CommonTransactionLookup
	categories CategoryLookup
}

func NewExactMatchStrategy(common CommonTransactionLookup, categories CategoryLookup) *ExactMatchStrategy {
	return &ExactMatchStrategy{common: common, categories: categories}
}

func (s *ExactMatchStrategy) Name() string {
	return "ExactMatch"
}

func (s *ExactMatchStrategy) Resolve(_ context.Context, req Request) (models.TransactionAnalysis, bool, error) {
	if s.common == nil || req.Key == "" {
		return models.TransactionAnalysis{}, false, nil
	}
	entry, ok := s.common.Get(req.Key)
	if !ok {
		return models.TransactionAnalysis{}, false, nil
	}
	return fillFromStore(entry.Analysis(), req, s.categories), true, nil
}
