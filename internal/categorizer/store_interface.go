package categorizer

import "fjacquet/quickspend/internal/models"

// CommonTransactionLookup is the read side of the common-transaction store.
type CommonTransactionLookup interface {
	Get(key string) (models.CommonTransaction, bool)
	// All returns entries in insertion order.
	All() []models.CommonTransaction
}

// CategoryLookup is the read side of the category registry.
type CategoryLookup interface {
	ListCategories() []models.Category
	ResolveIDByName(name string) int
}

// AnalysisCache stores remote categorizations by normalized key.
type AnalysisCache interface {
	Get(key string) (models.TransactionAnalysis, bool)
	Put(key string, value models.TransactionAnalysis)
}
