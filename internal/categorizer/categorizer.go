// Package categorizer turns a free-text expense description into a
// TransactionAnalysis. Resolution runs a fixed cascade and stops at the first
// strategy that answers:
//  1. exact lookup in the common-transaction store
//  2. fuzzy lookup in the same store
//  3. the in-memory categorization cache
//  4. a remote language-model provider (Claude or Gemini), or a local heuristic
//     when no key is configured
//
// When every strategy fails the Resolver still returns a usable analysis.
package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/textutils"
)

// Resolver orchestrates the resolution strategies. It is safe for concurrent use.
type Resolver struct {
	common     CommonTransactionLookup
	categories CategoryLookup
	strategies []ResolutionStrategy
	logger     logging.Logger
}

type resolverOptions struct {
	threshold     float64
	remoteTimeout time.Duration
}

// Option tunes a Resolver.
type Option func(*resolverOptions)

// WithFuzzyThreshold sets the similarity a fuzzy match has to exceed.
func WithFuzzyThreshold(threshold float64) Option {
	return func(o *resolverOptions) {
		o.threshold = threshold
	}
}

// WithRemoteTimeout bounds each provider call.
func WithRemoteTimeout(timeout time.Duration) Option {
	return func(o *resolverOptions) {
		o.remoteTimeout = timeout
	}
}

// NewResolver wires the default strategy cascade. Any of common, categories,
// cache may be nil; the matching strategies are then skipped. A nil pool uses
// the default Gemini and Claude clients.
func NewResolver(common CommonTransactionLookup, categories CategoryLookup, cache AnalysisCache, pool *ClientPool, logger logging.Logger, opts ...Option) *Resolver {
	logger = logging.OrDefault(logger)
	o := resolverOptions{
		threshold:     textutils.DefaultSimilarityThreshold,
		remoteTimeout: DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if pool == nil {
		pool = NewClientPool(DefaultFactories("", "", ""), logger)
	}

	return &Resolver{
		common:     common,
		categories: categories,
		logger:     logger,
		strategies: []ResolutionStrategy{
			NewExactMatchStrategy(common, categories),
			NewFuzzyMatchStrategy(common, categories, o.threshold, logger),
			NewCacheStrategy(cache),
			NewRemoteStrategy(pool, NewRemoteCategorizer(o.remoteTimeout, logger), categories, cache, logger),
		},
	}
}

// Resolve never fails: whatever happens, raw comes back as an analysis with a
// description, a valid type and a category id.
func (r *Resolver) Resolve(ctx context.Context, raw string, creds Credentials) (result models.TransactionAnalysis) {
	extraction := textutils.ExtractAmount(raw)
	req := Request{
		Raw:         raw,
		Extraction:  extraction,
		Key:         models.NormalizeKey(extraction.CleanDescription),
		Credentials: creds,
	}
	logger := r.logger.WithField(logging.FieldKey, req.Key)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Resolution panicked, using last-resort result",
				logging.Field{Key: logging.FieldError, Value: fmt.Sprint(rec)})
			result = lastResort(extraction)
		}
	}()

	var results StrategyResults
	for _, s := range r.strategies {
		analysis, found, err := s.Resolve(ctx, req)
		results.add(StrategyResult{Strategy: s.Name(), Analysis: analysis, Found: found, Error: err})
		if err != nil || !found {
			continue
		}
		logger.Debug("Transaction resolved",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldStatus, Value: results.Summary()})
		return r.finalize(analysis)
	}

	failed := logger
	if errs := results.Errors(); len(errs) > 0 {
		failed = logger.WithError(errors.Join(errs...))
	}
	failed.Debug("All strategies failed, degrading to fallback",
		logging.Field{Key: logging.FieldStatus, Value: results.Summary()})
	return r.finalize(r.fallback(req))
}

// fallback picks the first common transaction whose key occurs in the request
// key, or the last-resort analysis.
func (r *Resolver) fallback(req Request) models.TransactionAnalysis {
	if r.common != nil && req.Key != "" {
		for _, e := range r.common.All() {
			if e.Key == "" || !strings.Contains(req.Key, e.Key) {
				continue
			}
			out := e.Analysis()
			if req.Extraction.Amount != nil && *req.Extraction.Amount != 0 {
				out.Amount = models.CopyAmount(req.Extraction.Amount)
			}
			if out.CategoryID <= 0 {
				out.CategoryID = resolveName(r.categories, out.Category)
			}
			return out
		}
	}
	return lastResort(req.Extraction)
}

func lastResort(extraction textutils.AmountExtraction) models.TransactionAnalysis {
	description := strings.TrimSpace(extraction.CleanDescription)
	if description == "" {
		description = models.UnknownTransactionDescription
	}
	amount := models.Float64(0)
	if extraction.Amount != nil {
		amount = models.CopyAmount(extraction.Amount)
	}
	return models.TransactionAnalysis{
		Description: description,
		Amount:      amount,
		Type:        models.TransactionTypeDebit,
		CategoryID:  models.MiscellaneousCategoryID,
		Category:    models.MiscellaneousCategoryName,
	}
}

// finalize guarantees a valid type and id and fills in the category display name.
func (r *Resolver) finalize(a models.TransactionAnalysis) models.TransactionAnalysis {
	if a.CategoryID <= 0 {
		a.CategoryID = models.MiscellaneousCategoryID
	}
	if !a.Type.IsValid() {
		a.Type = models.ParseTransactionType(string(a.Type))
	}
	if r.categories == nil {
		if a.CategoryID == models.MiscellaneousCategoryID {
			a.Category = models.MiscellaneousCategoryName
		}
		return a
	}
	for _, c := range r.categories.ListCategories() {
		if c.ID == a.CategoryID {
			a.Category = c.Name
			return a
		}
	}
	if a.Category == "" {
		a.Category = models.UnknownCategoryName
	}
	return a
}
