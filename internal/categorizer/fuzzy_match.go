package categorizer

import (
	"context"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/textutils"
)

// FuzzyMatchStrategy picks the common transaction whose key is most similar to
// the request key, provided the similarity exceeds the threshold. Ties go to
// the entry registered first.
type FuzzyMatchStrategy struct {
	common     CommonTransactionLookup
	categories CategoryLookup
	threshold  float64
	logger     logging.Logger
}

func NewFuzzyMatchStrategy(common CommonTransactionLookup, categories CategoryLookup, threshold float64, logger logging.Logger) *FuzzyMatchStrategy {
	if threshold <= 0 || threshold > 1 {
		threshold = textutils.DefaultSimilarityThreshold
	}
	return &FuzzyMatchStrategy{
		common:     common,
		categories: categories,
		threshold:  threshold,
		logger:     logging.OrDefault(logger),
	}
}

func (s *FuzzyMatchStrategy) Name() string {
	return "FuzzyMatch"
}

func (s *FuzzyMatchStrategy) Resolve(_ context.Context, req Request) (models.TransactionAnalysis, bool, error) {
	if s.common == nil || req.Key == "" {
		return models.TransactionAnalysis{}, false, nil
	}

	entries := s.common.All()
	candidates := make([]textutils.Candidate[models.CommonTransaction], 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, textutils.Candidate[models.CommonTransaction]{Key: e.Key, Value: e})
	}

	match, ok := textutils.FindBestMatch(req.Key, candidates, s.threshold)
	if !ok {
		return models.TransactionAnalysis{}, false, nil
	}

	s.logger.Debug("Fuzzy match found",
		logging.Field{Key: logging.FieldKey, Value: req.Key},
		logging.Field{Key: "match", Value: match.Key},
		logging.Field{Key: logging.FieldScore, Value: match.Score})
	return fillFromStore(match.Value.Analysis(), req, s.categories), true, nil
}
