package projections

import (
	"context"
	"fmt"
	"math/rand/v2"

	"beautrip/internal/adapters/storage/treatment"
	domainTreatment "beautrip/internal/domain/treatment"
)

// Hot concerns: shuffle the best HotConcernsPool and show HotConcernsSize.
const (
	HotConcernsPool = 50
	HotConcernsSize = 10
)

// GetHotConcernsQuery carries query parameters.
type GetHotConcernsQuery struct {
	AccountID string
}

// GetHotConcernsResult carries the query result.
type GetHotConcernsResult struct {
	Treatments []TreatmentCard
}

// GetHotConcernsDeps holds dependencies for GetHotConcerns.
// Rand may be nil, in which case the global source is used.
type GetHotConcernsDeps struct {
	Treatments TreatmentReader
	Favorites  FavoriteStore
	Rand       *rand.Rand
}

// QueryGetHotConcerns picks a random sample of the top recommended procedures.
// POST: at most HotConcernsSize distinct cards, all from the top HotConcernsPool by
// RecommendationWeights
func QueryGetHotConcerns(ctx context.Context, query GetHotConcernsQuery, deps GetHotConcernsDeps) (GetHotConcernsResult, error) {
	all, err := deps.Treatments.List(ctx, treatment.ListFilter{Limit: CatalogLimit})
	if err != nil {
		return GetHotConcernsResult{}, fmt.Errorf("load treatments: %w", err)
	}
	favorites, err := favoriteSet(ctx, deps.Favorites, query.AccountID)
	if err != nil {
		return GetHotConcernsResult{}, fmt.Errorf("load favorites: %w", err)
	}

	top := domainTreatment.Top(all, domainTreatment.RecommendationWeights, HotConcernsPool)
	shuffle := rand.Shuffle
	if deps.Rand != nil {
		shuffle = deps.Rand.Shuffle
	}
	shuffle(len(top), func(i, j int) { top[i], top[j] = top[j], top[i] })
	if len(top) > HotConcernsSize {
		top = top[:HotConcernsSize]
	}
	return GetHotConcernsResult{Treatments: cards(top, favorites)}, nil
}
