package projections

import (
	"context"
	"fmt"

	"beautrip/internal/adapters/storage/treatment"
	domainTreatment "beautrip/internal/domain/treatment"
)

// K-beauty ranking sizes: rank the first KBeautyPool catalog rows and show KBeautySize.
const (
	KBeautyPool = 200
	KBeautySize = 10
)

// GetKBeautyRankingQuery carries query parameters.
type GetKBeautyRankingQuery struct {
	AccountID string
}

// GetKBeautyRankingResult carries the query result.
type GetKBeautyRankingResult struct {
	Treatments []TreatmentCard
}

// GetKBeautyRankingDeps holds dependencies for GetKBeautyRanking.
type GetKBeautyRankingDeps struct {
	Treatments TreatmentReader
	Favorites  FavoriteStore
}

// QueryGetKBeautyRanking ranks popular procedures with popularity-heavy weights.
// POST: at most KBeautySize cards, ordered by KBeautyWeights score
func QueryGetKBeautyRanking(ctx context.Context, query GetKBeautyRankingQuery, deps GetKBeautyRankingDeps) (GetKBeautyRankingResult, error) {
	pool, err := deps.Treatments.List(ctx, treatment.ListFilter{Limit: KBeautyPool})
	if err != nil {
		return GetKBeautyRankingResult{}, fmt.Errorf("load treatments: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetKBeautyRankingResult{}, fmt.Errorf("load favorites: %w", err)
	}
	top := domainTreatment.Top(pool, domainTreatment.KBeautyWeights, KBeautySize)
	return GetKBeautyRankingResult{Treatments: cards(top, favorites)}, nil
}
