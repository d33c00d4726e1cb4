package categorizer

import (
	"context"
	"errors"
	"strconv"

	"golang.org/x/sync/singleflight"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
)

// RemoteStrategy asks the configured providers and caches the answer.
// Concurrent requests for the same key share one provider call.
type RemoteStrategy struct {
	pool       *ClientPool
	remote     *RemoteCategorizer
	categories CategoryLookup
	cache      AnalysisCache
	logger     logging.Logger
	group      singleflight.Group
}

func NewRemoteStrategy(pool *ClientPool, remote *RemoteCategorizer, categories CategoryLookup, cache AnalysisCache, logger logging.Logger) *RemoteStrategy {
	return &RemoteStrategy{
		pool:       pool,
		remote:     remote,
		categories: categories,
		cache:      cache,
		logger:     logging.OrDefault(logger),
	}
}

func (s *RemoteStrategy) Name() string {
	return "Remote"
}

// Resolve calls the preferred provider and, when it fails, the default one.
// Without any usable key it answers with the local heuristic instead. The
// extracted amount is merged into the result before it is cached.
func (s *RemoteStrategy) Resolve(ctx context.Context, req Request) (models.TransactionAnalysis, bool, error) {
	if req.Key == "" {
		return models.TransactionAnalysis{}, false, nil
	}

	sfKey := req.Key + "|claude=" + strconv.FormatBool(req.Credentials.UseClaude)
	v, err, shared := s.group.Do(sfKey, func() (interface{}, error) {
		return s.categorize(ctx, req)
	})
	if err != nil {
		return models.TransactionAnalysis{}, false, err
	}
	if shared {
		s.logger.Debug("Shared in-flight remote categorization",
			logging.Field{Key: logging.FieldKey, Value: req.Key})
	}

	merged := v.(models.TransactionAnalysis).Clone()
	merged.Amount = models.CopyAmount(req.Extraction.Amount)
	if s.cache != nil {
		s.cache.Put(req.Key, merged)
	}
	return merged, true, nil
}

func (s *RemoteStrategy) categorize(ctx context.Context, req Request) (models.TransactionAnalysis, error) {
	clean := req.Extraction.CleanDescription
	plan := req.Credentials.plan()
	if len(plan) == 0 {
		s.logger.Debug("No provider credentials, using local heuristic",
			logging.Field{Key: logging.FieldKey, Value: req.Key})
		return heuristic(clean), nil
	}

	var categories []models.Category
	if s.categories != nil {
		categories = s.categories.ListCategories()
	}

	var errs []error
	for _, a := range plan {
		provider, err := s.pool.Provider(ctx, a.provider, a.apiKey)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		analysis, err := s.remote.Categorize(ctx, clean, provider, categories)
		if err == nil {
			return analysis, nil
		}
		s.logger.WithError(err).Warn("Remote categorization failed",
			logging.Field{Key: logging.FieldProvider, Value: a.provider})
		errs = append(errs, err)
	}

	// A failed preferred provider with no default key to fall back on still
	// yields the heuristic, not a failure.
	if len(plan) == 1 && plan[0].provider == ProviderClaude {
		return heuristic(clean), nil
	}
	return models.TransactionAnalysis{}, errors.Join(errs...)
}

func heuristic(clean string) models.TransactionAnalysis {
	return models.TransactionAnalysis{
		Description: clean,
		Type:        models.TransactionTypeDebit,
		CategoryID:  models.MiscellaneousCategoryID,
		Category:    models.MiscellaneousCategoryName,
	}
}
