package categorizer

import (
	"context"

	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/textutils"
)

// Request is one description on its way through the resolution strategies.
// Key is the normalized clean description.
type Request struct {
	Raw         string
	Extraction  textutils.AmountExtraction
	Key         string
	Credentials Credentials
}

// ResolutionStrategy is one step of the lookup cascade.
type ResolutionStrategy interface {
	// Resolve returns the analysis and true when the strategy produced an answer.
	// A false result with a nil error means "no match, try the next one".
	Resolve(ctx context.Context, req Request) (models.TransactionAnalysis, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

// fillFromStore completes an analysis that came from a stored entry: the
// extracted amount stands in for a missing one and a zero id is resolved from
// the category name.
func fillFromStore(a models.TransactionAnalysis, req Request, categories CategoryLookup) models.TransactionAnalysis {
	out := a.Clone()
	if out.Amount == nil {
		out.Amount = models.CopyAmount(req.Extraction.Amount)
	}
	if out.CategoryID == 0 {
		out.CategoryID = resolveName(categories, out.Category)
	}
	return out
}

func resolveName(categories CategoryLookup, name string) int {
	if name == "" || categories == nil {
		return models.MiscellaneousCategoryID
	}
	return categories.ResolveIDByName(name)
}
