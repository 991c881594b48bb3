package domain

// TransactionFilter restricts a transaction listing to a calendar month and/or year.
type TransactionFilter struct {
	Month *int
	Year  *int
}

// PageRequest is an offset/limit page selector.
type PageRequest struct {
	Offset int
	Limit  int
}

// SeedReport counts the catalog rows touched by a seeding run.
type SeedReport struct {
	CurrenciesAdded   int `json:"currenciesAdded"`
	CategoriesAdded   int `json:"categoriesAdded"`
	CategoriesUpdated int `json:"categoriesUpdated"`
}

// Changed reports whether the run modified anything.
func (r SeedReport) Changed() bool {
	return r.CurrenciesAdded+r.CategoriesAdded+r.CategoriesUpdated > 0
}
