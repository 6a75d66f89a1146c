package projections

import (
	"context"
	"fmt"
	"strconv"

	"beautrip/internal/adapters/storage/treatment"
	"beautrip/internal/application/listutil"
	domainFavorite "beautrip/internal/domain/favorite"
	domainTreatment "beautrip/internal/domain/treatment"
)

// Treatment list filter keys.
const (
	FilterCategory = "category"
	FilterMid      = "mid"
)

// TreatmentFilterKeys are the query keys the treatment list accepts.
var TreatmentFilterKeys = []string{FilterCategory, FilterMid}

// TreatmentCard is one row of a treatment listing.
type TreatmentCard struct {
	domainTreatment.Treatment
	Favorited bool
}

// GetTreatmentListQuery carries query parameters.
type GetTreatmentListQuery struct {
	AccountID string
	Params    listutil.ListParams
}

// GetTreatmentListResult carries the query result.
type GetTreatmentListResult struct {
	Treatments      []TreatmentCard
	Window          listutil.Window
	LargeCategories []string
	MidCategories   []string
	Params          listutil.ListParams
}

// GetTreatmentListDeps holds dependencies for GetTreatmentList.
type GetTreatmentListDeps struct {
	Treatments TreatmentReader
	Favorites  FavoriteStore
}

// QueryGetTreatmentList filters, sorts and windows the catalog.
// PRE: Params parsed with TreatmentFilterKeys
// POST: len(Treatments) == Window.Shown == min(matches, 12*(loads+1))
// INVARIANT: filtering runs over the loaded catalog in one pass
func QueryGetTreatmentList(ctx context.Context, query GetTreatmentListQuery, deps GetTreatmentListDeps) (GetTreatmentListResult, error) {
	all, err := deps.Treatments.List(ctx, treatment.ListFilter{Limit: CatalogLimit})
	if err != nil {
		return GetTreatmentListResult{}, fmt.Errorf("load treatments: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetTreatmentListResult{}, fmt.Errorf("load favorites: %w", err)
	}

	large := query.Params.Filters[FilterCategory]
	mid := query.Params.Filters[FilterMid]
	var matched []domainTreatment.Treatment
	for _, t := range all {
		if large != "" && t.CategoryLarge != large {
			continue
		}
		if mid != "" && t.CategoryMid != mid {
			continue
		}
		if !t.MatchesSearch(query.Params.Search) {
			continue
		}
		matched = append(matched, t)
	}
	matched = domainTreatment.SortBy(matched, query.Params.Sort)

	window := listutil.NewWindow(query.Params.Loads, len(matched))
	return GetTreatmentListResult{
		Treatments:      cards(listutil.Apply(window, matched), favorites),
		Window:          window,
		LargeCategories: domainTreatment.LargeCategories(all),
		MidCategories:   domainTreatment.MidCategories(all, large),
		Params:          query.Params,
	}, nil
}

func cards(list []domainTreatment.Treatment, favorites domainFavorite.Set) []TreatmentCard {
	out := make([]TreatmentCard, len(list))
	for i, t := range list {
		out[i] = TreatmentCard{
			Treatment: t,
			Favorited: favorites.Has(domainFavorite.KindProcedure, strconv.FormatInt(t.ID, 10)),
		}
	}
	return out
}
