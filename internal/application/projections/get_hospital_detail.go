package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beautrip/internal/adapters/storage/review"
	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
	domainReview "beautrip/internal/domain/review"
	domainTreatment "beautrip/internal/domain/treatment"
)

// HospitalReviewLimit bounds reviews shown on a hospital page.
const HospitalReviewLimit = 20

// ErrNotFound is returned when a detail page's subject does not exist.
var ErrNotFound = errors.New("not found")

// GetHospitalDetailQuery carries query parameters.
type GetHospitalDetailQuery struct {
	AccountID  string
	HospitalID int64
	Category   string // optional large-category tab
}

// GetHospitalDetailResult carries the query result.
type GetHospitalDetailResult struct {
	Hospital      domainHospital.Hospital
	Favorited     bool
	Categories    []string
	Category      string
	Treatments    []TreatmentCard
	Reviews       []domainReview.HospitalReview
	ReviewAverage float64
}

// GetHospitalDetailDeps holds dependencies for GetHospitalDetail.
type GetHospitalDetailDeps struct {
	Hospitals  HospitalReader
	Treatments TreatmentReader
	Reviews    ReviewStore
	Favorites  FavoriteStore
}

// QueryGetHospitalDetail loads a hospital with its procedures and reviews.
// PRE: HospitalID > 0
// POST: returns ErrNotFound when the hospital does not exist
func QueryGetHospitalDetail(ctx context.Context, query GetHospitalDetailQuery, deps GetHospitalDetailDeps) (GetHospitalDetailResult, error) {
	h, err := deps.Hospitals.GetByID(ctx, query.HospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		return GetHospitalDetailResult{}, ErrNotFound
	}
	if err != nil {
		return GetHospitalDetailResult{}, fmt.Errorf("load hospital: %w", err)
	}
	treatments, err := deps.Treatments.ListByHospital(ctx, h.ID)
	if err != nil {
		return GetHospitalDetailResult{}, fmt.Errorf("load hospital treatments: %w", err)
	}
	reviews, err := deps.Reviews.ListHospital(ctx, review.HospitalFilter{HospitalName: h.Name, Limit: HospitalReviewLimit})
	if err != nil {
		return GetHospitalDetailResult{}, fmt.Errorf("load hospital reviews: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetHospitalDetailResult{}, fmt.Errorf("load favorites: %w", err)
	}

	var shown []domainTreatment.Treatment
	for _, t := range treatments {
		if query.Category == "" || t.CategoryLarge == query.Category {
			shown = append(shown, t)
		}
	}

	var sum float64
	var rated int
	for i := range reviews {
		if a := reviews[i].AverageRating(); a > 0 {
			sum += a
			rated++
		}
	}
	var avg float64
	if rated > 0 {
		avg = sum / float64(rated)
	}

	return GetHospitalDetailResult{
		Hospital:      h,
		Favorited:     favorites.Has(domainFavorite.KindClinic, h.Name),
		Categories:    domainTreatment.LargeCategories(treatments),
		Category:      query.Category,
		Treatments:    cards(domainTreatment.Rank(shown, domainTreatment.RecommendationWeights), favorites),
		Reviews:       reviews,
		ReviewAverage: avg,
	}, nil
}
