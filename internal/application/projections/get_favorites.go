package projections

import (
	"context"
	"fmt"

	domainFavorite "beautrip/internal/domain/favorite"
)

// GetFavoritesQuery carries query parameters.
type GetFavoritesQuery struct {
	AccountID string
	Kind      string // procedure or clinic; empty defaults to procedure
}

// GetFavoritesResult carries the query result.
type GetFavoritesResult struct {
	Kind           string
	Favorites      []domainFavorite.Favorite
	ProcedureCount int
	ClinicCount    int
}

// GetFavoritesDeps holds dependencies for GetFavorites.
type GetFavoritesDeps struct {
	Favorites FavoriteStore
}

// QueryGetFavorites lists one tab of the favorites page, newest first.
// PRE: AccountID is non-empty
// POST: counts cover both kinds regardless of the selected tab
func QueryGetFavorites(ctx context.Context, query GetFavoritesQuery, deps GetFavoritesDeps) (GetFavoritesResult, error) {
	kind := query.Kind
	if kind != domainFavorite.KindClinic {
		kind = domainFavorite.KindProcedure
	}
	all, err := deps.Favorites.ListByAccount(ctx, query.AccountID, "")
	if err != nil {
		return GetFavoritesResult{}, fmt.Errorf("load favorites: %w", err)
	}
	result := GetFavoritesResult{Kind: kind}
	for _, f := range all {
		switch f.Kind {
		case domainFavorite.KindProcedure:
			result.ProcedureCount++
		case domainFavorite.KindClinic:
			result.ClinicCount++
		}
		if f.Kind == kind {
			result.Favorites = append(result.Favorites, f)
		}
	}
	return result, nil
}
