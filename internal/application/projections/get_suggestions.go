package projections

import (
	"context"
	"fmt"

	"beautrip/internal/adapters/storage/treatment"
	domainTreatment "beautrip/internal/domain/treatment"
)

// SuggestionLimit bounds autocomplete results.
const SuggestionLimit = 10

// GetSuggestionsQuery carries query parameters.
type GetSuggestionsQuery struct {
	Category string // large category selected on the review form; optional
	Term     string
}

// GetSuggestionsResult carries the query result.
type GetSuggestionsResult struct {
	Suggestions []string `json:"suggestions"`
}

// GetSuggestionsDeps holds dependencies for GetSuggestions.
type GetSuggestionsDeps struct {
	Treatments TreatmentReader
}

// QueryGetSuggestions autocompletes procedure names on the review forms.
// POST: empty Term returns no suggestions without touching the catalog
func QueryGetSuggestions(ctx context.Context, query GetSuggestionsQuery, deps GetSuggestionsDeps) (GetSuggestionsResult, error) {
	if query.Term == "" {
		return GetSuggestionsResult{Suggestions: []string{}}, nil
	}
	list, err := deps.Treatments.List(ctx, treatment.ListFilter{CategoryLarge: query.Category, Limit: CatalogLimit})
	if err != nil {
		return GetSuggestionsResult{}, fmt.Errorf("load treatments: %w", err)
	}
	out := domainTreatment.SuggestSmallCategories(list, query.Category, query.Term, SuggestionLimit)
	if out == nil {
		out = []string{}
	}
	return GetSuggestionsResult{Suggestions: out}, nil
}
