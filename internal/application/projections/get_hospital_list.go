package projections

import (
	"context"
	"fmt"

	"beautrip/internal/application/listutil"
	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
)

// FilterDepartment is the hospital list department filter key.
const FilterDepartment = "department"

// HospitalFilterKeys are the query keys the hospital list accepts.
var HospitalFilterKeys = []string{FilterDepartment}

// HospitalCard is one row of the hospital listing.
type HospitalCard struct {
	domainHospital.Hospital
	Favorited bool
}

// GetHospitalListQuery carries query parameters.
type GetHospitalListQuery struct {
	AccountID string
	Params    listutil.ListParams
}

// GetHospitalListResult carries the query result.
type GetHospitalListResult struct {
	Hospitals   []HospitalCard
	Window      listutil.Window
	Departments []string
	Params      listutil.ListParams
}

// GetHospitalListDeps holds dependencies for GetHospitalList.
type GetHospitalListDeps struct {
	Hospitals HospitalReader
	Favorites FavoriteStore
}

// QueryGetHospitalList filters hospitals by search term and department.
// POST: len(Hospitals) == Window.Shown
func QueryGetHospitalList(ctx context.Context, query GetHospitalListQuery, deps GetHospitalListDeps) (GetHospitalListResult, error) {
	all, err := deps.Hospitals.List(ctx, CatalogLimit)
	if err != nil {
		return GetHospitalListResult{}, fmt.Errorf("load hospitals: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetHospitalListResult{}, fmt.Errorf("load favorites: %w", err)
	}

	dept := query.Params.Filters[FilterDepartment]
	var matched []domainHospital.Hospital
	for _, h := range all {
		if h.MatchesSearch(query.Params.Search) && h.HasDepartment(dept) {
			matched = append(matched, h)
		}
	}

	window := listutil.NewWindow(query.Params.Loads, len(matched))
	visible := listutil.Apply(window, matched)
	out := make([]HospitalCard, len(visible))
	for i, h := range visible {
		out[i] = HospitalCard{Hospital: h, Favorited: favorites.Has(domainFavorite.KindClinic, h.Name)}
	}
	return GetHospitalListResult{
		Hospitals:   out,
		Window:      window,
		Departments: domainHospital.CollectDepartments(all),
		Params:      query.Params,
	}, nil
}
