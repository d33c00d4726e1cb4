package categorizer

import (
	"context"

	"fjacquet/quickspend/internal/models"
)

// CacheStrategy answers from previously cached remote categorizations.
type CacheStrategy struct {
	cache AnalysisCache
}

func NewCacheStrategy(cache AnalysisCache) *CacheStrategy {
	return &CacheStrategy{cache: cache}
}

func (s *CacheStrategy) Name() string {
	return "Cache"
}

// Resolve returns a copy of the cached analysis. The amount extracted from the
// current input replaces the cached one; without it the cached amount is kept.
func (s *CacheStrategy) Resolve(_ context.Context, req Request) (models.TransactionAnalysis, bool, error) {
	if s.cache == nil || req.Key == "" {
		return models.TransactionAnalysis{}, false, nil
	}
	cached, ok := s.cache.Get(req.Key)
	if !ok {
		return models.TransactionAnalysis{}, false, nil
	}
	out := cached.Clone()
	if req.Extraction.Amount != nil {
		out.Amount = models.CopyAmount(req.Extraction.Amount)
	}
	return out, true, nil
}
