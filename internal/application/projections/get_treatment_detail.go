package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"beautrip/internal/adapters/storage/review"
	"beautrip/internal/adapters/storage/treatment"
	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
	domainReview "beautrip/internal/domain/review"
	domainTreatment "beautrip/internal/domain/treatment"
)

// Detail page sizes.
const (
	RelatedLimit         = 4
	ProcedureReviewLimit = 5
)

// GetTreatmentDetailQuery carries query parameters.
type GetTreatmentDetailQuery struct {
	AccountID   string
	TreatmentID int64
}

// GetTreatmentDetailResult carries the query result.
type GetTreatmentDetailResult struct {
	Treatment   domainTreatment.Treatment
	Favorited   bool
	Hospital    *domainHospital.Hospital // nil when the catalog has no hospital row
	Hashtags    []string
	Related     []TreatmentCard
	Reviews     []domainReview.ProcedureReview
	Description string
}

// GetTreatmentDetailDeps holds dependencies for GetTreatmentDetail.
type GetTreatmentDetailDeps struct {
	Treatments TreatmentReader
	Hospitals  HospitalReader
	Reviews    ReviewStore
	Favorites  FavoriteStore
}

// QueryGetTreatmentDetail loads one procedure with its hospital, related procedures in the
// same mid category and recent reviews in its large category.
// PRE: TreatmentID > 0
// POST: returns ErrNotFound when the treatment does not exist; Related excludes the treatment
func QueryGetTreatmentDetail(ctx context.Context, query GetTreatmentDetailQuery, deps GetTreatmentDetailDeps) (GetTreatmentDetailResult, error) {
	t, err := deps.Treatments.GetByID(ctx, query.TreatmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTreatmentDetailResult{}, ErrNotFound
	}
	if err != nil {
		return GetTreatmentDetailResult{}, fmt.Errorf("load treatment: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetTreatmentDetailResult{}, fmt.Errorf("load favorites: %w", err)
	}

	result := GetTreatmentDetailResult{
		Treatment:   t,
		Favorited:   favorites.Has(domainFavorite.KindProcedure, strconv.FormatInt(t.ID, 10)),
		Hashtags:    t.HashtagList(),
		Description: domainTreatment.CategoryDescription(t.CategoryMid),
	}

	if t.HospitalID > 0 {
		h, err := deps.Hospitals.GetByID(ctx, t.HospitalID)
		switch {
		case err == nil:
			result.Hospital = &h
		case !errors.Is(err, sql.ErrNoRows):
			return GetTreatmentDetailResult{}, fmt.Errorf("load hospital: %w", err)
		}
	}

	if t.CategoryLarge != "" {
		peers, err := deps.Treatments.List(ctx, treatment.ListFilter{CategoryLarge: t.CategoryLarge, Limit: CatalogLimit})
		if err != nil {
			return GetTreatmentDetailResult{}, fmt.Errorf("load related: %w", err)
		}
		var related []domainTreatment.Treatment
		for _, p := range peers {
			if p.ID != t.ID && p.CategoryMid == t.CategoryMid {
				related = append(related, p)
			}
		}
		result.Related = cards(domainTreatment.Top(related, domainTreatment.RecommendationWeights, RelatedLimit), favorites)

		result.Reviews, err = deps.Reviews.ListProcedure(ctx, review.ProcedureFilter{
			Category: t.CategoryLarge,
			Limit:    ProcedureReviewLimit,
		})
		if err != nil {
			return GetTreatmentDetailResult{}, fmt.Errorf("load reviews: %w", err)
		}
	}
	return result, nil
}
